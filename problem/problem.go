// Package problem 定义了背包问题实例的 JSON 文档格式及其加载与换算逻辑。
package problem

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/marc8cel/knapsack/solver"
	"github.com/marc8cel/knapsack/xerrors"
)

// Item 表示文档中的一个候选物品。
// 重量以 decimal 表示，小数重量在换算阶段缩放为整数。
type Item struct {
	ID     string          `json:"id,omitempty"`
	Weight decimal.Decimal `json:"weight"`
	Value  float64         `json:"value"`
}

// Document 表示一个完整的问题实例文档。
type Document struct {
	Capacity decimal.Decimal `json:"capacity"`
	Items    []Item          `json:"items"`
}

// Load 从指定路径读取并解析问题文档。
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Wrap(err, xerrors.ErrNotFound, "failed to read problem file")
	}
	return Parse(data)
}

// Parse 解析 JSON 格式的问题文档。
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, xerrors.Wrap(err, xerrors.ErrInvalidArg, "failed to parse problem document")
	}
	if len(doc.Items) == 0 {
		return nil, xerrors.ErrEmptyProblem
	}
	return &doc, nil
}

// ToSolverInput 将文档换算为求解器输入：
// 小数重量按十进制缩放为整数，容量随同缩放后向下取整。
// 物品标识为空时按输入顺序自动编号。
func (d *Document) ToSolverInput(maxScale int32) ([]solver.Item, int64, int32, error) {
	weights := make([]decimal.Decimal, len(d.Items))
	for i, item := range d.Items {
		weights[i] = item.Weight
	}

	scaled, capacity, scale, err := solver.ScaleWeights(weights, d.Capacity, maxScale)
	if err != nil {
		return nil, 0, 0, err
	}

	items := make([]solver.Item, len(d.Items))
	for i, in := range d.Items {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("item %d", i+1)
		}
		items[i] = solver.Item{ID: id, Weight: scaled[i], Value: in.Value}
	}
	return items, capacity, scale, nil
}
