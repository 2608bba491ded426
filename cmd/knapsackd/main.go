package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/marc8cel/knapsack/api"
	"github.com/marc8cel/knapsack/app"
	"github.com/marc8cel/knapsack/bootstrap"
	"github.com/marc8cel/knapsack/config"
	"github.com/marc8cel/knapsack/health"
	"github.com/marc8cel/knapsack/middleware"
	"github.com/marc8cel/knapsack/server"
	"github.com/marc8cel/knapsack/solver"
)

const serviceName = "knapsackd"

var version = "dev"

func main() {
	var cfg config.Config

	b := bootstrap.New(serviceName, version)
	if err := b.Initialize(&cfg); err != nil {
		os.Exit(1)
	}
	if err := b.SetupIDGen(cfg.Snowflake); err != nil {
		os.Exit(1)
	}
	m, metricsCleanup := b.SetupMetrics(cfg.Metrics)

	knapsack := solver.NewKnapsackSolver(
		solver.WithLimits(solver.Limits{
			MaxItems:      cfg.Solver.MaxItems,
			MaxCapacity:   cfg.Solver.MaxCapacity,
			MaxTableCells: cfg.Solver.MaxTableCells,
		}),
		solver.WithWorkers(cfg.Solver.Workers),
	)

	handler := api.NewHandler(knapsack, serviceName,
		api.WithMetrics(m),
		api.WithMaxWeightScale(cfg.Solver.MaxWeightScale),
		api.WithCheckers(health.SolverChecker(knapsack)),
	)

	// 配置热更新：求解器上限与缩放位数随 [solver] 段变更生效。
	config.RegisterReloadHook(func(c *config.Config) {
		knapsack.SetLimits(solver.Limits{
			MaxItems:      c.Solver.MaxItems,
			MaxCapacity:   c.Solver.MaxCapacity,
			MaxTableCells: c.Solver.MaxTableCells,
		})
		knapsack.SetWorkers(c.Solver.Workers)
		handler.SetMaxWeightScale(c.Solver.MaxWeightScale)
	})

	if cfg.Server.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	middlewares := []gin.HandlerFunc{
		middleware.Recovery(b.Logger.Logger),
		middleware.RequestID(),
		middleware.LoggerWithSkipPaths(b.Logger.Logger, "/healthz"),
	}
	if cfg.CORS.Enabled {
		middlewares = append(middlewares, middleware.CORS())
	}
	if cfg.Server.HTTP.MaxBodyBytes > 0 {
		middlewares = append(middlewares, middleware.MaxBodyBytes(cfg.Server.HTTP.MaxBodyBytes))
	}
	if cfg.RateLimit.Enabled {
		middlewares = append(middlewares,
			middleware.NewLocalRateLimitMiddleware(cfg.RateLimit.Rate, cfg.RateLimit.Burst))
	}
	middlewares = append(middlewares,
		middleware.HTTPMetricsMiddlewareWithOptions(m, middleware.MetricsOptions{
			SkipPaths: []string{"/healthz"},
		}))

	engine := server.NewDefaultGinEngine(middlewares...)
	handler.RegisterRoutes(engine)

	addr := cfg.Server.HTTP.Addr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Server.HTTP.Port)
	}
	httpServer := server.NewGinServer(engine, addr, b.Logger.Logger, server.HTTPOptions{
		ReadTimeout:       cfg.Server.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.HTTP.WriteTimeout,
		IdleTimeout:       cfg.Server.HTTP.IdleTimeout,
	})

	application := app.New(serviceName, b.Logger.Logger,
		app.WithServer(httpServer),
		app.WithCleanup(metricsCleanup),
	)
	if err := application.Run(); err != nil {
		b.Logger.Error("service exited with error", "error", err)
		os.Exit(1)
	}
}
