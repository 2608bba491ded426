// Package contextx 提供了一组用于安全地在 context.Context 中注入与提取业务上下文信息（如请求 ID、IP、UA 等）的工具函数。
// 它通过使用私有类型作为 Key，有效防止了跨包的 Key 冲突。
package contextx

import (
	"context"
)

type contextKey int

const (
	RequestIDKey contextKey = iota // 请求唯一标识 Key。
	SolveIDKey                     // 求解任务唯一标识 Key。
	IPKey                          // 客户端 IP Key。
	UAKey                          // 用户代理 Key。
)

// KeyNames 映射 Key 到日志字段名。
var KeyNames = map[contextKey]string{
	RequestIDKey: "request_id",
	SolveIDKey:   "solve_id",
	IPKey:        "client_ip",
	UAKey:        "user_agent",
}

// WithRequestID 将请求 ID 注入到 Context 中。
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID 从 Context 中提取请求 ID。
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

// WithSolveID 将求解任务 ID 注入到 Context 中。
func WithSolveID(ctx context.Context, solveID string) context.Context {
	return context.WithValue(ctx, SolveIDKey, solveID)
}

// GetSolveID 从 Context 中提取求解任务 ID，若不存在则返回空字符串。
func GetSolveID(ctx context.Context) string {
	if val, ok := ctx.Value(SolveIDKey).(string); ok {
		return val
	}
	return ""
}

// WithIP 将客户端 IP 地址注入到 Context 中。
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, IPKey, ip)
}

// GetIP 从 Context 中提取客户端 IP 地址。
func GetIP(ctx context.Context) string {
	if val, ok := ctx.Value(IPKey).(string); ok {
		return val
	}
	return ""
}

// WithUA 将用户代理注入到 Context 中。
func WithUA(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, UAKey, ua)
}

// GetUA 从 Context 中提取用户代理。
func GetUA(ctx context.Context) string {
	if val, ok := ctx.Value(UAKey).(string); ok {
		return val
	}
	return ""
}
