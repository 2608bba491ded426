package solver

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/marc8cel/knapsack/xerrors"
)

func sampleItems() []Item {
	return []Item{
		{ID: "a", Weight: 2, Value: 3},
		{ID: "b", Weight: 3, Value: 4},
		{ID: "c", Weight: 4, Value: 5},
		{ID: "d", Weight: 5, Value: 6},
	}
}

func TestSolveBasic(t *testing.T) {
	s := NewKnapsackSolver()

	solution, err := s.Solve(sampleItems(), 5)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.TotalValue != 7 {
		t.Errorf("Expected total value 7, got %v", solution.TotalValue)
	}
	if solution.TotalWeight != 5 {
		t.Errorf("Expected total weight 5, got %v", solution.TotalWeight)
	}
	if len(solution.Selected) != 2 || solution.Selected[0] != 0 || solution.Selected[1] != 1 {
		t.Errorf("Expected selection [0 1], got %v", solution.Selected)
	}
	if len(solution.SelectedIDs) != 2 || solution.SelectedIDs[0] != "a" || solution.SelectedIDs[1] != "b" {
		t.Errorf("Expected selected ids [a b], got %v", solution.SelectedIDs)
	}
}

func TestSolveEmptyItems(t *testing.T) {
	s := NewKnapsackSolver()

	solution, err := s.Solve(nil, 10)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.TotalValue != 0 || len(solution.Selected) != 0 {
		t.Errorf("Expected empty solution, got %+v", solution)
	}
}

func TestSolveZeroCapacity(t *testing.T) {
	s := NewKnapsackSolver()

	// 零容量时总是空选择，零重量物品也不例外。
	items := append(sampleItems(), Item{ID: "free", Weight: 0, Value: 9})
	solution, err := s.Solve(items, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.TotalValue != 0 || len(solution.Selected) != 0 {
		t.Errorf("Expected empty solution at zero capacity, got %+v", solution)
	}
}

func TestSolveItemHeavierThanCapacity(t *testing.T) {
	s := NewKnapsackSolver()

	solution, err := s.Solve([]Item{{ID: "x", Weight: 10, Value: 5}}, 5)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.TotalValue != 0 || len(solution.Selected) != 0 {
		t.Errorf("Expected overweight item to be excluded, got %+v", solution)
	}
}

func TestSolveZeroWeightItem(t *testing.T) {
	s := NewKnapsackSolver()

	items := []Item{
		{ID: "free", Weight: 0, Value: 5},
		{ID: "x", Weight: 2, Value: 3},
	}
	solution, err := s.Solve(items, 2)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if solution.TotalValue != 8 {
		t.Errorf("Expected total value 8, got %v", solution.TotalValue)
	}
	if len(solution.Selected) != 2 {
		t.Errorf("Expected both items selected, got %v", solution.Selected)
	}
}

func TestSolveTieBreakPrefersExclusion(t *testing.T) {
	s := NewKnapsackSolver()

	// 两个物品等重等值时，回溯应只取靠前的一个。
	items := []Item{
		{ID: "first", Weight: 2, Value: 5},
		{ID: "second", Weight: 2, Value: 5},
	}
	solution, err := s.Solve(items, 2)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(solution.Selected) != 1 || solution.Selected[0] != 0 {
		t.Errorf("Expected selection [0], got %v", solution.Selected)
	}

	// 零价值物品无法严格改进，永远不入选。
	solution, err = s.Solve([]Item{{ID: "zero", Weight: 1, Value: 0}}, 5)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(solution.Selected) != 0 {
		t.Errorf("Expected zero-value item to stay excluded, got %v", solution.Selected)
	}
}

func TestSolveDeterministic(t *testing.T) {
	s := NewKnapsackSolver()
	items := sampleItems()

	first, err := s.Solve(items, 7)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	second, err := s.Solve(items, 7)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if first.TotalValue != second.TotalValue || len(first.Selected) != len(second.Selected) {
		t.Errorf("Expected identical solutions, got %+v and %+v", first, second)
	}
	for i := range first.Selected {
		if first.Selected[i] != second.Selected[i] {
			t.Errorf("Expected identical selection, got %v and %v", first.Selected, second.Selected)
		}
	}
}

func TestSolveMonotonicInCapacity(t *testing.T) {
	s := NewKnapsackSolver()
	rng := rand.New(rand.NewSource(23))

	// 容量增大时最优价值不允许下降。
	for round := 0; round < 30; round++ {
		n := 1 + rng.Intn(10)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{
				ID:     string(rune('a' + i)),
				Weight: int64(1 + rng.Intn(15)),
				Value:  float64(rng.Intn(100)),
			}
		}

		prev := 0.0
		for capacity := int64(0); capacity <= 40; capacity++ {
			solution, err := s.Solve(items, capacity)
			if err != nil {
				t.Fatalf("Solve failed: %v", err)
			}
			if solution.TotalValue < prev {
				t.Fatalf("Round %d: value dropped from %v to %v at capacity %d (items=%v)",
					round, prev, solution.TotalValue, capacity, items)
			}
			prev = solution.TotalValue
		}
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	s := NewKnapsackSolver()
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		n := 1 + rng.Intn(12)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{
				ID:     string(rune('a' + i)),
				Weight: int64(rng.Intn(20)),
				Value:  float64(rng.Intn(100)),
			}
		}
		capacity := int64(1 + rng.Intn(40))

		solution, err := s.Solve(items, capacity)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		want := bruteForce(items, capacity)
		if math.Abs(solution.TotalValue-want) > 1e-9 {
			t.Fatalf("Round %d: expected value %v, got %v (items=%v capacity=%d)",
				round, want, solution.TotalValue, items, capacity)
		}
		verifyFeasible(t, items, capacity, solution)
	}
}

func TestSolveParallelMatchesSerial(t *testing.T) {
	serial := NewKnapsackSolver()
	parallel := NewKnapsackSolver(WithWorkers(4))
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		n := 1 + rng.Intn(15)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{
				ID:     string(rune('a' + i)),
				Weight: int64(rng.Intn(30)),
				Value:  float64(rng.Intn(100)),
			}
		}
		capacity := int64(rng.Intn(100))

		want, err := serial.Solve(items, capacity)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		got, err := parallel.SolveParallel(context.Background(), items, capacity)
		if err != nil {
			t.Fatalf("SolveParallel failed: %v", err)
		}
		if got.TotalValue != want.TotalValue {
			t.Fatalf("Round %d: parallel value %v != serial value %v", round, got.TotalValue, want.TotalValue)
		}
		if len(got.Selected) != len(want.Selected) {
			t.Fatalf("Round %d: parallel selection %v != serial selection %v", round, got.Selected, want.Selected)
		}
		for i := range got.Selected {
			if got.Selected[i] != want.Selected[i] {
				t.Fatalf("Round %d: parallel selection %v != serial selection %v", round, got.Selected, want.Selected)
			}
		}
	}
}

func TestSolveParallelCancelled(t *testing.T) {
	s := NewKnapsackSolver(WithWorkers(4))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SolveParallel(ctx, sampleItems(), 1000)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestMaxValueMatchesSolve(t *testing.T) {
	s := NewKnapsackSolver()
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 30; round++ {
		n := 1 + rng.Intn(12)
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{
				ID:     string(rune('a' + i)),
				Weight: int64(rng.Intn(25)),
				Value:  float64(rng.Intn(50)),
			}
		}
		capacity := int64(rng.Intn(60))

		solution, err := s.Solve(items, capacity)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		value, err := s.MaxValue(items, capacity)
		if err != nil {
			t.Fatalf("MaxValue failed: %v", err)
		}
		if math.Abs(value-solution.TotalValue) > 1e-9 {
			t.Fatalf("Round %d: MaxValue %v != Solve value %v", round, value, solution.TotalValue)
		}
	}
}

func TestSolveValidation(t *testing.T) {
	s := NewKnapsackSolver()

	cases := []struct {
		name     string
		items    []Item
		capacity int64
		want     error
	}{
		{"negative capacity", sampleItems(), -1, xerrors.ErrNegativeCapacity},
		{"negative weight", []Item{{ID: "x", Weight: -2, Value: 1}}, 5, xerrors.ErrNegativeWeight},
		{"negative value", []Item{{ID: "x", Weight: 2, Value: -1}}, 5, xerrors.ErrNegativeValue},
		{"nan value", []Item{{ID: "x", Weight: 2, Value: math.NaN()}}, 5, xerrors.ErrInvalidValue},
		{"inf value", []Item{{ID: "x", Weight: 2, Value: math.Inf(1)}}, 5, xerrors.ErrInvalidValue},
		{"empty id", []Item{{ID: "", Weight: 2, Value: 1}}, 5, xerrors.ErrEmptyItemID},
		{"duplicate id", []Item{{ID: "x", Weight: 2, Value: 1}, {ID: "x", Weight: 3, Value: 2}}, 5, xerrors.ErrDuplicateItemID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Solve(tc.items, tc.capacity); !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSolveLimits(t *testing.T) {
	items := sampleItems()

	s := NewKnapsackSolver(WithLimits(Limits{MaxItems: 2}))
	if _, err := s.Solve(items, 5); !errors.Is(err, xerrors.ErrTooManyItems) {
		t.Errorf("Expected ErrTooManyItems, got %v", err)
	}

	s = NewKnapsackSolver(WithLimits(Limits{MaxCapacity: 3}))
	if _, err := s.Solve(items, 5); !errors.Is(err, xerrors.ErrCapacityTooLarge) {
		t.Errorf("Expected ErrCapacityTooLarge, got %v", err)
	}

	s = NewKnapsackSolver(WithLimits(Limits{MaxTableCells: 10}))
	if _, err := s.Solve(items, 5); !errors.Is(err, xerrors.ErrTableTooLarge) {
		t.Errorf("Expected ErrTableTooLarge, got %v", err)
	}
}

func TestSetLimitsTakesEffect(t *testing.T) {
	s := NewKnapsackSolver()
	items := sampleItems()

	if _, err := s.Solve(items, 5); err != nil {
		t.Fatalf("Solve failed before tightening limits: %v", err)
	}

	// 热更新收紧上限后，同一实例必须立即拒绝超限请求。
	s.SetLimits(Limits{MaxItems: 2})
	if _, err := s.Solve(items, 5); !errors.Is(err, xerrors.ErrTooManyItems) {
		t.Errorf("Expected ErrTooManyItems after SetLimits, got %v", err)
	}

	// 放开上限后恢复可用。
	s.SetLimits(Limits{})
	if _, err := s.Solve(items, 5); err != nil {
		t.Errorf("Solve failed after clearing limits: %v", err)
	}

	s.SetWorkers(2)
	solution, err := s.SolveParallel(context.Background(), items, 5)
	if err != nil {
		t.Fatalf("SolveParallel failed after SetWorkers: %v", err)
	}
	if solution.TotalValue != 7 {
		t.Errorf("Expected total value 7, got %v", solution.TotalValue)
	}
}

func bruteForce(items []Item, capacity int64) float64 {
	best := 0.0
	for mask := 0; mask < 1<<len(items); mask++ {
		var weight int64
		var value float64
		for i := range items {
			if mask&(1<<i) != 0 {
				weight += items[i].Weight
				value += items[i].Value
			}
		}
		if weight <= capacity && value > best {
			best = value
		}
	}
	return best
}

func verifyFeasible(t *testing.T, items []Item, capacity int64, solution *Solution) {
	t.Helper()

	var weight int64
	var value float64
	for _, idx := range solution.Selected {
		if idx < 0 || idx >= len(items) {
			t.Fatalf("Selected index %d out of range", idx)
		}
		weight += items[idx].Weight
		value += items[idx].Value
	}
	if weight > capacity {
		t.Errorf("Selected weight %d exceeds capacity %d", weight, capacity)
	}
	if weight != solution.TotalWeight {
		t.Errorf("TotalWeight %d does not match selection weight %d", solution.TotalWeight, weight)
	}
	if math.Abs(value-solution.TotalValue) > 1e-9 {
		t.Errorf("TotalValue %v does not match selection value %v", solution.TotalValue, value)
	}
}
