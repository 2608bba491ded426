// Package logging 提供了基于标准库 slog 深度定制的生产级日志系统.
// 生成摘要:
// 1) 日志可同时落到 stdout 与切割文件，stdout 目标始终保留。
// 假设:
// 1) 单个目标写入失败不影响其余目标，错误合并后上抛。
package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler 将一条日志记录分发到全部目标 Handler。
type teeHandler struct {
	targets []slog.Handler
}

func newTeeHandler(targets ...slog.Handler) slog.Handler {
	return &teeHandler{targets: targets}
}

// Enabled 只要任一目标接受该级别即处理。
func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, target := range h.targets {
		if target.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle 依次写入各目标；Record 在目标间共享前必须 Clone。
func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	for _, target := range h.targets {
		if handleErr := target.Handle(ctx, record.Clone()); handleErr != nil {
			err = errors.Join(err, handleErr)
		}
	}
	return err
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	targets := make([]slog.Handler, len(h.targets))
	for i, target := range h.targets {
		targets[i] = target.WithAttrs(attrs)
	}
	return &teeHandler{targets: targets}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	targets := make([]slog.Handler, len(h.targets))
	for i, target := range h.targets {
		targets[i] = target.WithGroup(name)
	}
	return &teeHandler{targets: targets}
}
