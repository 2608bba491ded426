package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func sampleRows() []Row {
	return []Row{
		{Item: "item 1", Weight: 2, Value: 3},
		{Item: "gold", Weight: 3, Value: 4},
	}
}

func TestExcelWriterWrite(t *testing.T) {
	writer := NewExcelWriter()

	var buf bytes.Buffer
	if err := writer.Write(&buf, sampleRows(), 5, 7); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	// 表头 + 两个物品 + 汇总行。
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[0][0] != "Item" || rows[0][1] != "Weight" || rows[0][2] != "Value" {
		t.Errorf("Unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "item 1" || rows[2][0] != "gold" {
		t.Errorf("Unexpected item rows: %v %v", rows[1], rows[2])
	}
	if rows[3][0] != "Total" || rows[3][1] != "5" || rows[3][2] != "7" {
		t.Errorf("Unexpected summary row: %v", rows[3])
	}
}

func TestExcelWriterEmptySelection(t *testing.T) {
	writer := NewExcelWriter()

	var buf bytes.Buffer
	if err := writer.Write(&buf, nil, 0, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header and summary only, got %d rows", len(rows))
	}
}

func TestExcelWriterSaveFile(t *testing.T) {
	writer := NewExcelWriter()
	path := filepath.Join(t.TempDir(), "chosen_items.xlsx")

	if err := writer.SaveFile(path, sampleRows(), 5, 7); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty workbook file")
	}
}
