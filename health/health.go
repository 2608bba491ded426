// Package health 提供服务健康检查能力。
package health

import (
	"errors"
	"fmt"
	"math"

	"github.com/marc8cel/knapsack/solver"
)

// Checker 定义健康检查函数原型。
type Checker func() error

// SolverChecker 返回求解器自检函数。
// 自检在一个固定的小规模实例上运行求解器，并校验最优值与选择结果，
// 用于发现配置限额被调成不可用、或运行时异常等问题。
func SolverChecker(s *solver.KnapsackSolver) Checker {
	return func() error {
		if s == nil {
			return errors.New("solver is nil")
		}

		items := []solver.Item{
			{ID: "probe-1", Weight: 2, Value: 3},
			{ID: "probe-2", Weight: 3, Value: 4},
		}

		solution, err := s.Solve(items, 5)
		if err != nil {
			return fmt.Errorf("solver probe failed: %w", err)
		}
		if math.Abs(solution.TotalValue-7) > 1e-9 || len(solution.Selected) != 2 {
			return fmt.Errorf("solver probe mismatch: value=%v selected=%d",
				solution.TotalValue, len(solution.Selected))
		}

		return nil
	}
}

// RunAll 依次执行全部检查函数，返回第一个失败的错误。
func RunAll(checkers ...Checker) error {
	for _, checker := range checkers {
		if err := checker(); err != nil {
			return err
		}
	}
	return nil
}
