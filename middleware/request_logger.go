package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/marc8cel/knapsack/contextx"
)

// Logger 生产级访问日志中间件。
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return LoggerWithSkipPaths(logger)
}

// LoggerWithSkipPaths 返回可跳过指定路径的访问日志中间件。
// 健康检查等高频探测路径不值得逐条记录。
func LoggerWithSkipPaths(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		ctx := c.Request.Context()

		// 提取链路追踪 ID
		traceID := ""
		if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.HasTraceID() {
			traceID = spanCtx.TraceID().String()
		}

		args := []any{
			"request_id", contextx.GetRequestID(ctx),
			"trace_id", traceID,
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"query", query,
			"ip", c.ClientIP(),
			"cost", cost,
			"user_agent", c.Request.UserAgent(),
		}
		// 求解请求带上任务编号，便于与求解完成日志对账。
		if solveID := contextx.GetSolveID(ctx); solveID != "" {
			args = append(args, "solve_id", solveID)
		}

		logger.InfoContext(ctx, "HTTP Request", args...)
	}
}
