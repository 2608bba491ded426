package solver

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// SolveParallel 是 Solve 的并行变体，结果与 Solve 完全一致。
// 每一行只依赖上一行，因此将容量维度切分为连续的区段，由多个工作协程
// 并行计算同一行的不同区段，每处理完一个物品行同步一次（errgroup 等待
// 即为行间屏障）。这是性能优化，不影响正确性。
func (s *KnapsackSolver) SolveParallel(ctx context.Context, items []Item, capacity int64) (*Solution, error) {
	start := time.Now()

	if err := s.validate(items, capacity); err != nil {
		return nil, err
	}

	if len(items) == 0 || capacity == 0 {
		return emptySolution(), nil
	}

	s.mu.RLock()
	workers := s.workers
	s.mu.RUnlock()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	// 区段太小时并行只有调度开销，退化为串行求解。
	if int64(workers) > capacity+1 {
		workers = int(capacity + 1)
	}
	if workers <= 1 {
		return s.Solve(items, capacity)
	}

	n := len(items)
	table := make([][]float64, n+1)
	table[0] = make([]float64, capacity+1)

	band := (capacity + 1 + int64(workers) - 1) / int64(workers)

	for i := 1; i <= n; i++ {
		prev := table[i-1]
		cur := make([]float64, capacity+1)
		w := items[i-1].Weight
		v := items[i-1].Value

		g, gctx := errgroup.WithContext(ctx)
		for lo := int64(0); lo <= capacity; lo += band {
			hi := lo + band - 1
			if hi > capacity {
				hi = capacity
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for c := lo; c <= hi; c++ {
					cur[c] = prev[c]
					if w <= c {
						if withItem := prev[c-w] + v; withItem > cur[c] {
							cur[c] = withItem
						}
					}
				}
				return nil
			})
		}
		// 行间屏障：整行完成后才能进入下一个物品行。
		if err := g.Wait(); err != nil {
			return nil, err
		}
		table[i] = cur
	}

	solution := reconstruct(items, table, capacity)

	slog.Info("knapsack parallel solve completed",
		"items_count", n,
		"capacity", capacity,
		"workers", workers,
		"selected_count", len(solution.Selected),
		"total_value", solution.TotalValue,
		"duration", time.Since(start))
	return solution, nil
}
