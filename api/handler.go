// Package api 提供了背包求解服务的 HTTP 接口层。
package api

import (
	"bytes"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marc8cel/knapsack/contextx"
	"github.com/marc8cel/knapsack/export"
	"github.com/marc8cel/knapsack/health"
	"github.com/marc8cel/knapsack/idgen"
	"github.com/marc8cel/knapsack/logging"
	"github.com/marc8cel/knapsack/metrics"
	"github.com/marc8cel/knapsack/response"
	"github.com/marc8cel/knapsack/solver"
	"github.com/marc8cel/knapsack/xerrors"
)

const (
	// ModeTable 完整 DP 表求解，返回最优值与物品回溯结果。
	ModeTable = "table"
	// ModeParallel 按容量分段并行填表，结果与 table 一致。
	ModeParallel = "parallel"
	// ModeValue 单行压缩求解，仅返回最优值。
	ModeValue = "value"
)

const exportFileName = "chosen_items.xlsx"

// Handler 背包求解服务的 HTTP 处理器。
// maxScale 支持配置热更新，原子读写。
type Handler struct {
	solver      *solver.KnapsackSolver
	writer      *export.ExcelWriter
	metrics     *metrics.Metrics
	checkers    []health.Checker
	maxScale    atomic.Int32
	serviceName string
}

// HandlerOption 定义 Handler 的配置选项。
type HandlerOption func(*Handler)

// WithMetrics 设置指标收集器。
func WithMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithCheckers 设置健康检查函数列表。
func WithCheckers(checkers ...health.Checker) HandlerOption {
	return func(h *Handler) {
		h.checkers = append(h.checkers, checkers...)
	}
}

// WithMaxWeightScale 设置小数重量缩放的最大十进制位数。
func WithMaxWeightScale(scale int32) HandlerOption {
	return func(h *Handler) {
		h.maxScale.Store(scale)
	}
}

// SetMaxWeightScale 替换小数重量缩放的最大十进制位数，供配置热更新回调使用。
func (h *Handler) SetMaxWeightScale(scale int32) {
	h.maxScale.Store(scale)
}

// NewHandler 创建并返回一个新的 Handler 实例。
func NewHandler(s *solver.KnapsackSolver, serviceName string, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:      s,
		writer:      export.NewExcelWriter(),
		serviceName: serviceName,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes 注册全部 HTTP 路由。
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/solve", h.Solve)
	v1.POST("/solve/export", h.SolveExport)
	r.GET("/healthz", h.Healthz)
}

// Solve 处理一次求解请求，返回最优子集与总价值。
func (h *Handler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, xerrors.InvalidArg("invalid solve request").WithDetail("%v", err))
		return
	}

	outcome, err := h.execute(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, outcome.resp)
}

// SolveExport 处理一次求解请求，并将选中物品表以 xlsx 工作簿返回。
// value 模式没有物品回溯结果，不支持导出。
func (h *Handler) SolveExport(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, xerrors.InvalidArg("invalid solve request").WithDetail("%v", err))
		return
	}
	if req.Mode == ModeValue {
		response.Error(c, xerrors.InvalidArg("value mode has no item selection to export"))
		return
	}

	outcome, err := h.execute(c, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.writer.Write(&buf, outcome.rows, outcome.resp.TotalWeight, outcome.resp.TotalValue); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName))
	c.Header("X-Solve-Id", outcome.resp.SolveID)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// Healthz 执行健康检查并返回服务状态。
func (h *Handler) Healthz(c *gin.Context) {
	if err := health.RunAll(h.checkers...); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"service": h.serviceName,
			"error":   err.Error(),
		})
		return
	}
	response.SuccessWithRawData(c, gin.H{
		"status":  "ok",
		"service": h.serviceName,
	})
}

// solveOutcome 汇总一次求解的响应体与导出行。
type solveOutcome struct {
	resp SolveResponse
	rows []export.Row
}

// execute 执行一次完整的求解流程：重复物品校验、小数重量缩放、
// 按模式调用求解器、并将缩放单位的结果还原为提交时的原始单位。
func (h *Handler) execute(c *gin.Context, req *SolveRequest) (*solveOutcome, error) {
	if err := checkDuplicateItems(req.Items); err != nil {
		return nil, err
	}

	weights := make([]float64, len(req.Items))
	for i, item := range req.Items {
		weights[i] = item.Weight
	}
	scaled, capacity, scale, err := solver.ScaleFloatWeights(weights, req.Capacity, h.maxScale.Load())
	if err != nil {
		return nil, err
	}

	items := make([]solver.Item, len(req.Items))
	for i, in := range req.Items {
		id := in.ID
		if id == "" {
			id = fmt.Sprintf("item %d", i+1)
		}
		items[i] = solver.Item{ID: id, Weight: scaled[i], Value: in.Value}
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeTable
	}

	solveNo := idgen.GenSolveNo()
	ctx := contextx.WithSolveID(c.Request.Context(), solveNo)
	// 回写到请求上下文，访问日志中间件在 c.Next 返回后取用。
	c.Request = c.Request.WithContext(ctx)

	start := time.Now()
	var solution *solver.Solution
	switch mode {
	case ModeValue:
		var value float64
		value, err = h.solver.MaxValue(items, capacity)
		if err == nil {
			solution = &solver.Solution{TotalValue: value}
		}
	case ModeParallel:
		solution, err = h.solver.SolveParallel(ctx, items, capacity)
	default:
		solution, err = h.solver.Solve(items, capacity)
	}
	elapsed := time.Since(start)

	if h.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		h.metrics.ObserveSolve(mode, status, solver.TableCells(len(items), capacity), elapsed)
	}
	if err != nil {
		logging.Warn(ctx, "solve rejected",
			"solve_id", solveNo,
			"mode", mode,
			"items_count", len(items),
			"error", err)
		return nil, err
	}

	outcome := &solveOutcome{
		resp: SolveResponse{
			SolveID:     solveNo,
			Mode:        mode,
			Capacity:    req.Capacity,
			Scale:       scale,
			TotalValue:  solution.TotalValue,
			TotalWeight: descale(solution.TotalWeight, scale),
			Items:       make([]ChosenItem, 0, len(solution.Selected)),
		},
	}
	for _, idx := range solution.Selected {
		chosen := ChosenItem{
			Index:  idx,
			ID:     items[idx].ID,
			Weight: req.Items[idx].Weight,
			Value:  req.Items[idx].Value,
		}
		outcome.resp.Items = append(outcome.resp.Items, chosen)
		outcome.rows = append(outcome.rows, export.Row{
			Item:   chosen.ID,
			Weight: chosen.Weight,
			Value:  chosen.Value,
		})
	}

	logging.Info(ctx, "solve completed",
		"solve_id", solveNo,
		"mode", mode,
		"items_count", len(items),
		"capacity", req.Capacity,
		"scale", scale,
		"total_value", outcome.resp.TotalValue,
		"selected_count", len(solution.Selected),
		"duration", elapsed)
	return outcome, nil
}

// checkDuplicateItems 拒绝重量与价值完全相同的物品对，
// 这类输入通常是重复提交，并且会让回溯结果产生歧义。
func checkDuplicateItems(items []ItemInput) error {
	type key struct {
		weight float64
		value  float64
	}
	seen := make(map[key]int, len(items))
	for i, item := range items {
		k := key{weight: item.Weight, value: item.Value}
		if first, ok := seen[k]; ok {
			return xerrors.ErrDuplicateItem.
				WithContext("first", first+1).
				WithContext("second", i+1)
		}
		seen[k] = i
	}
	return nil
}

// descale 将缩放单位的整数重量还原为提交时的原始单位。
func descale(weight int64, scale int32) float64 {
	if scale == 0 {
		return float64(weight)
	}
	return decimal.NewFromInt(weight).Shift(-scale).InexactFloat64()
}
