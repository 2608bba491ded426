package solver

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marc8cel/knapsack/xerrors"
)

func TestScaleWeightsInteger(t *testing.T) {
	weights := []decimal.Decimal{
		decimal.NewFromInt(2),
		decimal.NewFromInt(3),
	}

	scaled, capacity, scale, err := ScaleWeights(weights, decimal.NewFromInt(5), 6)
	if err != nil {
		t.Fatalf("ScaleWeights failed: %v", err)
	}
	if scale != 0 {
		t.Errorf("Expected scale 0 for integer weights, got %d", scale)
	}
	if capacity != 5 {
		t.Errorf("Expected capacity 5, got %d", capacity)
	}
	if scaled[0] != 2 || scaled[1] != 3 {
		t.Errorf("Expected weights unchanged, got %v", scaled)
	}
}

func TestScaleWeightsFractional(t *testing.T) {
	weights := []decimal.Decimal{
		decimal.RequireFromString("0.5"),
		decimal.RequireFromString("1.25"),
	}

	scaled, capacity, scale, err := ScaleWeights(weights, decimal.RequireFromString("2.6"), 6)
	if err != nil {
		t.Fatalf("ScaleWeights failed: %v", err)
	}
	if scale != 2 {
		t.Errorf("Expected scale 2, got %d", scale)
	}
	if scaled[0] != 50 || scaled[1] != 125 {
		t.Errorf("Expected scaled weights [50 125], got %v", scaled)
	}
	// 容量随同缩放后向下取整：2.6 * 100 = 260。
	if capacity != 260 {
		t.Errorf("Expected capacity 260, got %d", capacity)
	}
}

func TestScaleWeightsCapacityFloor(t *testing.T) {
	weights := []decimal.Decimal{decimal.RequireFromString("0.5")}

	// 重量只需一位小数，容量多余的小数位被向下取整。
	_, capacity, scale, err := ScaleWeights(weights, decimal.RequireFromString("3.27"), 6)
	if err != nil {
		t.Fatalf("ScaleWeights failed: %v", err)
	}
	if scale != 1 {
		t.Errorf("Expected scale 1, got %d", scale)
	}
	if capacity != 32 {
		t.Errorf("Expected capacity 32, got %d", capacity)
	}
}

func TestScaleWeightsErrors(t *testing.T) {
	fractional := []decimal.Decimal{decimal.RequireFromString("0.5")}
	capacity := decimal.NewFromInt(5)

	// 禁用缩放时小数重量直接报错。
	if _, _, _, err := ScaleWeights(fractional, capacity, 0); !errors.Is(err, xerrors.ErrFractionalWeight) {
		t.Errorf("Expected ErrFractionalWeight, got %v", err)
	}

	// 缩放位数不足。
	tiny := []decimal.Decimal{decimal.RequireFromString("0.0001")}
	if _, _, _, err := ScaleWeights(tiny, capacity, 2); !errors.Is(err, xerrors.ErrScaleOverflow) {
		t.Errorf("Expected ErrScaleOverflow, got %v", err)
	}

	negative := []decimal.Decimal{decimal.RequireFromString("-1")}
	if _, _, _, err := ScaleWeights(negative, capacity, 6); !errors.Is(err, xerrors.ErrNegativeWeight) {
		t.Errorf("Expected ErrNegativeWeight, got %v", err)
	}

	if _, _, _, err := ScaleWeights(fractional, decimal.NewFromInt(-1), 6); !errors.Is(err, xerrors.ErrNegativeCapacity) {
		t.Errorf("Expected ErrNegativeCapacity, got %v", err)
	}
}

func TestScaleFloatWeights(t *testing.T) {
	scaled, capacity, scale, err := ScaleFloatWeights([]float64{0.1, 0.2}, 0.35, 6)
	if err != nil {
		t.Fatalf("ScaleFloatWeights failed: %v", err)
	}
	if scale != 1 {
		t.Errorf("Expected scale 1, got %d", scale)
	}
	if scaled[0] != 1 || scaled[1] != 2 {
		t.Errorf("Expected scaled weights [1 2], got %v", scaled)
	}
	// 0.35 * 10 = 3.5，向下取整为 3。
	if capacity != 3 {
		t.Errorf("Expected capacity 3, got %d", capacity)
	}
}

func TestScaledSolveEndToEnd(t *testing.T) {
	s := NewKnapsackSolver()

	weights := []float64{0.5, 1.5, 2.5}
	values := []float64{10, 30, 45}
	scaled, capacity, _, err := ScaleFloatWeights(weights, 3.0, 6)
	if err != nil {
		t.Fatalf("ScaleFloatWeights failed: %v", err)
	}

	items := make([]Item, len(scaled))
	for i, w := range scaled {
		items[i] = Item{ID: string(rune('a' + i)), Weight: w, Value: values[i]}
	}
	solution, err := s.Solve(items, capacity)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	// 最优组合为 0.5+2.5=3.0，价值 55。
	if solution.TotalValue != 55 {
		t.Errorf("Expected total value 55, got %v", solution.TotalValue)
	}
	if solution.TotalWeight != 30 {
		t.Errorf("Expected scaled total weight 30, got %v", solution.TotalWeight)
	}
}
