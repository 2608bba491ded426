// Package solver 提供了 0/1 背包问题的精确求解算法实现。
package solver

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/marc8cel/knapsack/xerrors"
)

// Item 代表一个待选物品。物品一旦提交求解即视为不可变。
type Item struct {
	ID     string  // 物品的唯一标识符。
	Weight int64   // 物品重量（非负整数，小数重量需先缩放）。
	Value  float64 // 物品价值（非负有限实数）。
}

// Solution 表示一次求解的结果：被选中的物品子集及其总价值与总重量。
// 结果仅作为求解的返回值存在，没有独立的生命周期。
type Solution struct {
	SelectedIDs []string `json:"selected_ids"` // 被选中物品的标识符，按输入顺序排列。
	Selected    []int    `json:"selected"`     // 被选中物品在输入序列中的下标，升序。
	TotalValue  float64  `json:"total_value"`  // 选中子集的总价值（可行子集中的最大值）。
	TotalWeight int64    `json:"total_weight"` // 选中子集的总重量（不超过容量）。
}

// Limits 定义求解器的安全上限，防止无界的内存与时间占用。
type Limits struct {
	MaxItems      int   // 单次求解允许的最大物品数，0 表示不限制。
	MaxCapacity   int64 // 单次求解允许的最大容量，0 表示不限制。
	MaxTableCells int64 // DP 表的最大单元格数 ((n+1)×(capacity+1))，0 表示不限制。
}

// KnapsackSolver 0/1 背包求解器。
// 算法为经典动态规划：T[i][c] 表示使用前 i 个物品、容量预算 c 时可达的最大价值。
// 平局约定：价值相同时优先排除当前物品，保证结果确定性。
// 上限与并行参数支持配置热更新，读写经互斥锁保护。
type KnapsackSolver struct {
	mu      sync.RWMutex
	limits  Limits
	workers int
}

// Option 定义求解器的配置选项。
type Option func(*KnapsackSolver)

// WithLimits 设置求解器的安全上限。
func WithLimits(limits Limits) Option {
	return func(s *KnapsackSolver) {
		s.limits = limits
	}
}

// WithWorkers 设置并行求解的工作协程数，0 表示使用 GOMAXPROCS。
func WithWorkers(workers int) Option {
	return func(s *KnapsackSolver) {
		s.workers = workers
	}
}

// NewKnapsackSolver 创建并返回一个新的 KnapsackSolver 实例。
func NewKnapsackSolver(opts ...Option) *KnapsackSolver {
	s := &KnapsackSolver{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLimits 替换求解器的安全上限，供配置热更新回调使用。
func (s *KnapsackSolver) SetLimits(limits Limits) {
	s.mu.Lock()
	s.limits = limits
	s.mu.Unlock()
}

// SetWorkers 替换并行求解的工作协程数，供配置热更新回调使用。
func (s *KnapsackSolver) SetWorkers(workers int) {
	s.mu.Lock()
	s.workers = workers
	s.mu.Unlock()
}

// Solve 计算给定物品与容量下的最优子集（精确解）。
// items: 物品序列，重量为非负整数，价值为非负有限实数。
// capacity: 背包容量（非负整数，与重量同单位）。
// 返回值：最优 Solution；输入非法或规模超限时返回对应的错误。
func (s *KnapsackSolver) Solve(items []Item, capacity int64) (*Solution, error) {
	start := time.Now()

	if err := s.validate(items, capacity); err != nil {
		return nil, err
	}

	// 空物品列表或零容量时，唯一可行解是空选择。
	if len(items) == 0 || capacity == 0 {
		return emptySolution(), nil
	}

	table := s.buildTable(items, capacity)
	solution := reconstruct(items, table, capacity)

	slog.Info("knapsack solve completed",
		"items_count", len(items),
		"capacity", capacity,
		"selected_count", len(solution.Selected),
		"total_value", solution.TotalValue,
		"total_weight", solution.TotalWeight,
		"duration", time.Since(start))
	return solution, nil
}

// buildTable 构建完整的 DP 表。
// table[i][c] = 使用前 i 个物品、容量预算 c 时的最大价值。
func (s *KnapsackSolver) buildTable(items []Item, capacity int64) [][]float64 {
	n := len(items)
	table := make([][]float64, n+1)
	// 基准行：不使用任何物品时价值为 0。
	table[0] = make([]float64, capacity+1)

	for i := 1; i <= n; i++ {
		prev := table[i-1]
		cur := make([]float64, capacity+1)
		w := items[i-1].Weight
		v := items[i-1].Value

		for c := int64(0); c <= capacity; c++ {
			cur[c] = prev[c] // 不选第 i 个物品。
			if w <= c {
				// 选第 i 个物品：仅在严格更优时采纳，平局时保持排除。
				if withItem := prev[c-w] + v; withItem > cur[c] {
					cur[c] = withItem
				}
			}
		}
		table[i] = cur
	}

	return table
}

// reconstruct 从 (n, capacity) 开始反向回溯 DP 表，恢复被选中的物品子集。
// 若 table[i][c] != table[i-1][c]，则第 i 个物品被选中，容量预算回退其重量。
func reconstruct(items []Item, table [][]float64, capacity int64) *Solution {
	n := len(items)
	selected := make([]int, 0)
	c := capacity

	for i := n; i > 0; i-- {
		if table[i][c] != table[i-1][c] {
			selected = append(selected, i-1)
			c -= items[i-1].Weight
		}
	}

	// 回溯得到的下标为降序，翻转为输入顺序。
	for left, right := 0, len(selected)-1; left < right; left, right = left+1, right-1 {
		selected[left], selected[right] = selected[right], selected[left]
	}

	solution := &Solution{
		SelectedIDs: make([]string, 0, len(selected)),
		Selected:    selected,
		TotalValue:  table[n][capacity],
	}
	for _, idx := range selected {
		solution.SelectedIDs = append(solution.SelectedIDs, items[idx].ID)
		solution.TotalWeight += items[idx].Weight
	}

	return solution
}

// validate 在计算开始前校验输入，任何非法输入都立即报错，绝不静默修正。
func (s *KnapsackSolver) validate(items []Item, capacity int64) error {
	if capacity < 0 {
		return xerrors.ErrNegativeCapacity.WithContext("capacity", capacity)
	}

	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Weight < 0 {
			return xerrors.ErrNegativeWeight.WithContext("index", i).WithContext("weight", item.Weight)
		}
		if math.IsNaN(item.Value) || math.IsInf(item.Value, 0) {
			return xerrors.ErrInvalidValue.WithContext("index", i)
		}
		if item.Value < 0 {
			return xerrors.ErrNegativeValue.WithContext("index", i).WithContext("value", item.Value)
		}
		if item.ID == "" {
			return xerrors.ErrEmptyItemID.WithContext("index", i)
		}
		if _, ok := seen[item.ID]; ok {
			return xerrors.ErrDuplicateItemID.WithContext("id", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	return s.checkLimits(len(items), capacity)
}

// checkLimits 校验问题规模是否超出配置的安全上限。
func (s *KnapsackSolver) checkLimits(n int, capacity int64) error {
	s.mu.RLock()
	limits := s.limits
	s.mu.RUnlock()

	if limits.MaxItems > 0 && n > limits.MaxItems {
		return xerrors.ErrTooManyItems.WithContext("items_count", n).WithContext("max_items", limits.MaxItems)
	}
	if limits.MaxCapacity > 0 && capacity > limits.MaxCapacity {
		return xerrors.ErrCapacityTooLarge.WithContext("capacity", capacity).WithContext("max_capacity", limits.MaxCapacity)
	}
	if limits.MaxTableCells > 0 {
		cells := TableCells(n, capacity)
		if cells > limits.MaxTableCells {
			return xerrors.ErrTableTooLarge.WithContext("cells", cells).WithContext("max_cells", limits.MaxTableCells)
		}
	}
	return nil
}

// TableCells 计算 n 个物品、给定容量下 DP 表的单元格数。
func TableCells(n int, capacity int64) int64 {
	return int64(n+1) * (capacity + 1)
}

func emptySolution() *Solution {
	return &Solution{
		SelectedIDs: []string{},
		Selected:    []int{},
	}
}
