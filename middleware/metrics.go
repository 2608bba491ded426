// Package middleware 提供了通用的 Gin 中间件实现。
// 生成摘要:
// 1) 支持 HTTP 指标采集跳过指定路径。
// 假设:
// 1) 业务侧优先使用 xerrors 作为统一错误类型。
package middleware

import (
	"strconv"
	"time"

	"github.com/marc8cel/knapsack/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsOptions 定义指标中间件的可选参数。
type MetricsOptions struct {
	SkipPaths []string
}

// HTTPMetricsMiddleware 返回一个用于采集 HTTP 请求指标的 Gin 中间件。
func HTTPMetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return HTTPMetricsMiddlewareWithOptions(m, MetricsOptions{})
}

// HTTPMetricsMiddlewareWithOptions 返回一个可配置的 HTTP 指标采集中间件。
func HTTPMetricsMiddlewareWithOptions(m *metrics.Metrics, opts MetricsOptions) gin.HandlerFunc {
	skip := make(map[string]struct{})
	for _, path := range opts.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == "" {
			path = "unknown"
		}
		if _, ok := skip[path]; ok {
			c.Next()
			return
		}

		if m != nil {
			m.HTTPInFlight.WithLabelValues(c.Request.Method, path).Inc()
			defer m.HTTPInFlight.WithLabelValues(c.Request.Method, path).Dec()
		}

		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()

		statusStr := strconv.Itoa(c.Writer.Status())

		if m != nil {
			m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, statusStr).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
		}
	}
}
