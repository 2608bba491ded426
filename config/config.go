// Package config 提供了统一的配置加载与管理能力.
// 生成摘要:
// 1) 定义求解服务的顶级配置结构（服务器、日志、指标、限流、求解器）。
// 2) 支持 TOML 文件 + APP_ 环境变量覆盖 + fsnotify 热更新。
// 假设:
// 1) 求解器安全上限为必填项，缺省时由 Normalize 填入默认值。
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/marc8cel/knapsack/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version   string          `mapstructure:"version"   toml:"version"`
	Server    ServerConfig    `mapstructure:"server"    toml:"server"`
	Log       LogConfig       `mapstructure:"log"       toml:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"   toml:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit" toml:"ratelimit"`
	CORS      CORSConfig      `mapstructure:"cors"      toml:"cors"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake" toml:"snowflake"`
	Solver    SolverConfig    `mapstructure:"solver"    toml:"solver"`
}

// ServerConfig 定义服务器运行时的基础网络与环境参数.
type ServerConfig struct {
	Name        string `mapstructure:"name"        toml:"name"        validate:"required"`
	Environment string `mapstructure:"environment" toml:"environment" validate:"oneof=dev test prod"`
	HTTP        struct {
		Addr              string        `mapstructure:"addr"                toml:"addr"`
		ReadTimeout       time.Duration `mapstructure:"read_timeout"        toml:"read_timeout"`
		ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" toml:"read_header_timeout"`
		WriteTimeout      time.Duration `mapstructure:"write_timeout"       toml:"write_timeout"`
		IdleTimeout       time.Duration `mapstructure:"idle_timeout"        toml:"idle_timeout"`
		MaxBodyBytes      int64         `mapstructure:"max_body_bytes"      toml:"max_body_bytes"`
		Port              int           `mapstructure:"port"                toml:"port"                validate:"required,min=1,max=65535"`
	} `mapstructure:"http" toml:"http"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"`       // 日志级别。
	File       string `mapstructure:"file"        toml:"file"`        // 日志文件路径。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`    // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"` // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`     // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`    // 是否启用压缩。
}

// MetricsConfig 普罗米修斯监控指标暴露配置.
type MetricsConfig struct {
	Port    string `mapstructure:"port"    toml:"port"`
	Path    string `mapstructure:"path"    toml:"path"`
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
}

// RateLimitConfig 定义令牌桶限流参数.
type RateLimitConfig struct {
	Rate    int  `mapstructure:"rate"    toml:"rate"`
	Burst   int  `mapstructure:"burst"   toml:"burst"`
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// CORSConfig 定义跨域配置。
type CORSConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// SnowflakeConfig 分布式 ID 生成器参数.
type SnowflakeConfig struct {
	StartTime string `mapstructure:"start_time" toml:"start_time"`
	Type      string `mapstructure:"type"       toml:"type"`
	MachineID int64  `mapstructure:"machine_id" toml:"machine_id"`
}

// SolverConfig 定义 0/1 背包求解器的安全上限与并行参数.
type SolverConfig struct {
	MaxItems       int   `mapstructure:"max_items"        toml:"max_items"        validate:"min=0"` // 单次求解允许的最大物品数。
	MaxCapacity    int64 `mapstructure:"max_capacity"     toml:"max_capacity"     validate:"min=0"` // 单次求解允许的最大容量。
	MaxTableCells  int64 `mapstructure:"max_table_cells"  toml:"max_table_cells"  validate:"min=0"` // DP 表的最大单元格数，防止无界内存占用。
	MaxWeightScale int32 `mapstructure:"max_weight_scale" toml:"max_weight_scale" validate:"min=0,max=9"` // 小数重量缩放为整数时允许的最大十进制位数。
	Workers        int   `mapstructure:"workers"          toml:"workers"          validate:"min=0"` // 并行求解的工作协程数，0 表示使用 GOMAXPROCS。
}

const (
	defaultMaxItems       = 10000
	defaultMaxCapacity    = 1 << 20
	defaultMaxTableCells  = 64 << 20
	defaultMaxWeightScale = 6
)

// Normalize 为缺省的求解器上限填入默认值.
func (c *SolverConfig) Normalize() {
	if c.MaxItems == 0 {
		c.MaxItems = defaultMaxItems
	}
	if c.MaxCapacity == 0 {
		c.MaxCapacity = defaultMaxCapacity
	}
	if c.MaxTableCells == 0 {
		c.MaxTableCells = defaultMaxTableCells
	}
	if c.MaxWeightScale == 0 {
		c.MaxWeightScale = defaultMaxWeightScale
	}
}

var vInstance = viper.New()
var onReload []func(*Config)

// RegisterReloadHook 注册配置热更新回调。
func RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	onReload = append(onReload, hook)
}

// Load 全生产级的配置加载逻辑.
func Load(path string, conf any) error {
	vInstance.SetConfigFile(path)
	vInstance.SetConfigType("toml")

	vInstance.SetEnvPrefix("APP")
	vInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vInstance.AutomaticEnv()

	if err := vInstance.ReadInConfig(); err != nil {
		return fmt.Errorf("read config error: %w", err)
	}

	if err := vInstance.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	if c, ok := conf.(*Config); ok {
		c.Solver.Normalize()
	}

	validate := validator.New()
	if err := validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	vInstance.WatchConfig()
	vInstance.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name)
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		if unmarshalErr := vInstance.Unmarshal(conf); unmarshalErr != nil {
			slog.Error("reload config unmarshal failed", "error", unmarshalErr)

			return
		}

		// 核心优化：如果配置中有日志级别，自动更新全局日志级别
		if c, ok := conf.(*Config); ok {
			c.Solver.Normalize()
			logging.SetLevel(c.Log.Level)
		} else {
			// 尝试使用反射获取 Log.Level
			val := reflect.ValueOf(conf)
			if val.Kind() == reflect.Ptr {
				val = val.Elem()
			}
			logField := val.FieldByName("Log")
			if logField.IsValid() {
				levelField := logField.FieldByName("Level")
				if levelField.IsValid() && levelField.Kind() == reflect.String {
					logging.SetLevel(levelField.String())
				}
			}
		}

		if validateErr := validate.Struct(conf); validateErr != nil {
			slog.Error("reload config validation failed", "error", validateErr)
		} else {
			slog.Info("config hot-reloaded and validated successfully")
		}

		if cfg, ok := conf.(*Config); ok {
			for _, hook := range onReload {
				hook(cfg)
			}
		}
	})

	return nil
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)

		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)

		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.MarshalIndent(configMap, "  ", "  ")
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)

		return
	}

	slog.Info("Current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "dsn", "key", "token"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)

			continue
		}

		if slice, ok := val.([]any); ok {
			for _, item := range slice {
				if itemMap, ok := item.(map[string]any); ok {
					mask(itemMap)
				}
			}

			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"

				break
			}
		}
	}
}

// GetViper 返回底层的 Viper 实例.
func GetViper() *viper.Viper {
	return vInstance
}
