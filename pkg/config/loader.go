// Package config 提供 tx 的配置加载功能
//
// 核心功能:
//   - 从 YAML 文件加载配置
//   - 支持环境变量覆盖
//   - 配置验证
//
// 使用示例:
//
//	cfg, err := config.Load(config.GetConfigPath(""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// 配置优先级:
//  1. 环境变量（最高优先级）
//  2. 配置文件
//  3. 默认值（最低优先级）
//
// 环境变量命名规则:
//   - 配置项使用 TX_ 前缀
//   - 例如: TX_WORMHOLE_BIN, TX_CODE_LENGTH, TX_LOG_LEVEL
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultCodeLength 生成配对码的默认位数
	DefaultCodeLength = 32
	// MaxCodeLength 配对码位数上限
	MaxCodeLength = 256
	// DefaultBinary 被包装的外部工具
	DefaultBinary = "wormhole"
)

// Config 包含所有配置项
type Config struct {
	Wormhole WormholeConfig `mapstructure:"wormhole"`
	Code     CodeConfig     `mapstructure:"code"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// WormholeConfig 外部工具配置
type WormholeConfig struct {
	Binary string `mapstructure:"binary"`
}

// CodeConfig 配对码配置
type CodeConfig struct {
	Length int `mapstructure:"length"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default 返回只包含默认值的配置
func Default() *Config {
	return &Config{
		Wormhole: WormholeConfig{Binary: DefaultBinary},
		Code:     CodeConfig{Length: DefaultCodeLength},
		Logging:  LoggingConfig{Level: "warn", Format: "text"},
	}
}

// Load 从配置文件加载配置
// 如果配置文件不存在，返回默认配置（仍会应用环境变量）
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("tx")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "tx"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// 使用默认值
		case errors.Is(err, fs.ErrNotExist):
			// 指定的文件不存在，同样使用默认值
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("wormhole.binary", def.Wormhole.Binary)
	v.SetDefault("code.length", def.Code.Length)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}

// bindEnvVars 绑定环境变量
func bindEnvVars(v *viper.Viper) {
	v.SetEnvPrefix("TX")
	v.AutomaticEnv()

	bindings := map[string]string{
		"wormhole.binary": "WORMHOLE_BIN",
		"code.length":     "CODE_LENGTH",
		"logging.level":   "LOG_LEVEL",
		"logging.format":  "LOG_FORMAT",
	}

	for configKey, envKey := range bindings {
		if err := v.BindEnv(configKey, "TX_"+envKey); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind env var %s: %v\n", envKey, err)
		}
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Wormhole.Binary == "" {
		return fmt.Errorf("wormhole.binary cannot be empty")
	}

	if c.Code.Length < 1 || c.Code.Length > MaxCodeLength {
		return fmt.Errorf("invalid code.length: %d (must be 1-%d)", c.Code.Length, MaxCodeLength)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	validLogFormats := map[string]bool{
		"json": true,
		"text": true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log_format: %s (must be json or text)", c.Logging.Format)
	}

	return nil
}

// GetConfigPath 获取配置文件路径
// 按优先级搜索：
// 1. 命令行/环境变量 TX_CONFIG 指定的路径
// 2. 当前目录的 tx.yaml
// 3. $HOME/.config/tx/tx.yaml
// 都不存在时返回空字符串，由 Load 使用默认值
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv("TX_CONFIG"); env != "" {
		return env
	}

	paths := []string{"tx.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tx", "tx.yaml"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
