package solver

import (
	"log/slog"
	"time"
)

// MaxValue 使用单行滚动数组计算最优总价值，空间复杂度 O(capacity)。
// 该变体只返回最优价值，不进行子集回溯；适用于容量很大、只关心价值的场景。
// 行内按容量预算从大到小遍历，保证每个物品最多被计入一次。
func (s *KnapsackSolver) MaxValue(items []Item, capacity int64) (float64, error) {
	start := time.Now()

	if err := s.validate(items, capacity); err != nil {
		return 0, err
	}

	if len(items) == 0 || capacity == 0 {
		return 0, nil
	}

	row := make([]float64, capacity+1)
	for _, item := range items {
		w := item.Weight
		v := item.Value
		if w > capacity {
			continue // 单个物品超重，永远无法入选。
		}
		if w == 0 {
			// 零重量物品不受容量约束，直接计入所有预算档位。
			for c := int64(0); c <= capacity; c++ {
				row[c] += v
			}
			continue
		}
		for c := capacity; c >= w; c-- {
			if withItem := row[c-w] + v; withItem > row[c] {
				row[c] = withItem
			}
		}
	}

	best := row[capacity]
	slog.Info("knapsack max-value completed",
		"items_count", len(items),
		"capacity", capacity,
		"total_value", best,
		"duration", time.Since(start))
	return best, nil
}
