// knapsack 是一次性的命令行求解工具：
// 从 JSON 问题文件求解 0/1 背包，打印选中结果，并可选导出 xlsx 工作簿。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/marc8cel/knapsack/export"
	"github.com/marc8cel/knapsack/logging"
	"github.com/marc8cel/knapsack/problem"
	"github.com/marc8cel/knapsack/solver"
)

func main() {
	var (
		input    string
		output   string
		parallel bool
		maxScale int
	)
	flag.StringVar(&input, "input", "", "path to the problem JSON file")
	flag.StringVar(&output, "output", "", "path to the xlsx result workbook (optional)")
	flag.BoolVar(&parallel, "parallel", false, "fill the table with parallel band workers")
	flag.IntVar(&maxScale, "max-scale", 6, "max decimal digits when scaling fractional weights")
	flag.Parse()

	logging.InitLogger(logging.Config{Service: "knapsack", Module: "cli"})

	if input == "" {
		fmt.Fprintln(os.Stderr, "usage: knapsack -input problem.json [-output chosen_items.xlsx]")
		os.Exit(2)
	}

	if err := run(input, output, parallel, int32(maxScale)); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(input, output string, parallel bool, maxScale int32) error {
	doc, err := problem.Load(input)
	if err != nil {
		return err
	}

	items, capacity, scale, err := doc.ToSolverInput(maxScale)
	if err != nil {
		return err
	}

	s := solver.NewKnapsackSolver()
	var solution *solver.Solution
	if parallel {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		solution, err = s.SolveParallel(ctx, items, capacity)
	} else {
		solution, err = s.Solve(items, capacity)
	}
	if err != nil {
		return err
	}

	rows := make([]export.Row, 0, len(solution.Selected))
	totalWeight := 0.0
	for _, idx := range solution.Selected {
		w := doc.Items[idx].Weight.InexactFloat64()
		totalWeight += w
		rows = append(rows, export.Row{
			Item:   items[idx].ID,
			Weight: w,
			Value:  doc.Items[idx].Value,
		})
	}

	fmt.Printf("capacity: %s (scale %d)\n", doc.Capacity.String(), scale)
	fmt.Printf("total value: %g\n", solution.TotalValue)
	fmt.Printf("total weight: %g\n", totalWeight)
	for _, row := range rows {
		fmt.Printf("  %s\tweight=%g\tvalue=%g\n", row.Item, row.Weight, row.Value)
	}

	if output != "" {
		writer := export.NewExcelWriter()
		if err := writer.SaveFile(output, rows, totalWeight, solution.TotalValue); err != nil {
			return err
		}
		fmt.Printf("chosen items written to %s\n", output)
	}
	return nil
}
