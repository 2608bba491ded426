// Package export 提供了求解结果的表格导出能力，当前支持 xlsx 工作簿。
package export

import (
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/marc8cel/knapsack/xerrors"
)

const sheetName = "Chosen Items"

// Row 表示结果表中的一行：一个被选中的物品及其原始单位下的重量与价值。
type Row struct {
	Item   string
	Weight float64
	Value  float64
}

// ExcelWriter 将求解结果渲染为 xlsx 工作簿。
type ExcelWriter struct{}

// NewExcelWriter 创建并返回一个新的 ExcelWriter 实例。
func NewExcelWriter() *ExcelWriter {
	return &ExcelWriter{}
}

// Write 将被选中的物品表写入 w。
// 表格包含表头 (Item / Weight / Value)、每个选中物品一行、以及汇总行。
func (e *ExcelWriter) Write(w io.Writer, rows []Row, totalWeight, totalValue float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return xerrors.WrapInternal(err, "failed to rename result sheet")
	}

	if err := setRow(f, 1, "Item", "Weight", "Value"); err != nil {
		return err
	}

	line := 2
	for _, row := range rows {
		if err := setRow(f, line, row.Item, row.Weight, row.Value); err != nil {
			return err
		}
		line++
	}

	// 汇总行：选中物品的总重量与总价值。
	if err := setRow(f, line, "Total", totalWeight, totalValue); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return xerrors.WrapInternal(err, "failed to write workbook")
	}
	return nil
}

// SaveFile 将被选中的物品表写入指定路径的 xlsx 文件。
func (e *ExcelWriter) SaveFile(path string, rows []Row, totalWeight, totalValue float64) error {
	file, err := os.Create(path)
	if err != nil {
		return xerrors.WrapInternal(err, "failed to create output file")
	}
	defer file.Close()

	return e.Write(file, rows, totalWeight, totalValue)
}

func setRow(f *excelize.File, row int, values ...any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return xerrors.WrapInternal(err, "failed to compute result cell")
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return xerrors.WrapInternal(err, "failed to write result cell")
		}
	}
	return nil
}
