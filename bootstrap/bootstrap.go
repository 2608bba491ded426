// Package bootstrap 处理服务启动时通用基础设施的初始化。
package bootstrap

import (
	"flag"

	"github.com/marc8cel/knapsack/config"
	"github.com/marc8cel/knapsack/idgen"
	"github.com/marc8cel/knapsack/logging"
	"github.com/marc8cel/knapsack/metrics"
)

// Bootstrapper 处理通用基础设施的初始化
type Bootstrapper struct {
	ServiceName string
	Version     string
	Logger      *logging.Logger
}

// New 创建一个新的引导器实例
func New(serviceName, version string) *Bootstrapper {
	return &Bootstrapper{
		ServiceName: serviceName,
		Version:     version,
	}
}

// Initialize 解析命令行标志、加载配置文件，并初始化日志系统。
// 加载的配置会反序列化到传入的 cfg 结构体中。
func (b *Bootstrapper) Initialize(cfg *config.Config) error {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	// 临时初始化 Logger（用于记录配置加载过程中的潜在错误）。
	logging.InitLogger(logging.Config{Service: b.ServiceName, Module: "bootstrap"})
	b.Logger = logging.Default()

	if err := config.Load(configPath, cfg); err != nil {
		b.Logger.Error("failed to load config", "error", err)
		return err
	}

	// 使用配置中的日志设置重建全局 Logger。
	logging.ReplaceDefault(logging.Config{
		Service:    b.ServiceName,
		Module:     "main",
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	b.Logger = logging.Default()

	config.PrintWithMask(cfg)
	return nil
}

// SetupIDGen 初始化全局 ID 生成器。
func (b *Bootstrapper) SetupIDGen(cfg config.SnowflakeConfig) error {
	if err := idgen.Init(cfg); err != nil {
		b.Logger.Error("failed to init id generator", "error", err)
		return err
	}
	return nil
}

// SetupMetrics 初始化指标收集器；启用时在独立端口暴露 /metrics。
// 返回的清理函数用于在服务退出时关闭指标端口。
func (b *Bootstrapper) SetupMetrics(cfg config.MetricsConfig) (*metrics.Metrics, func()) {
	m := metrics.NewMetrics(b.ServiceName)
	m.RegisterBuildInfo(b.ServiceName, b.Version)

	cleanup := func() {}
	if cfg.Enabled {
		cleanup = m.ExposeHttp(cfg.Port)
	}
	return m, cleanup
}
