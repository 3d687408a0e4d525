package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config 主配置结构
type Config struct {
	// 提供商配置
	Provider ProviderConfig `json:"provider" mapstructure:"provider"`

	// 批量抓取配置
	Batch BatchConfig `json:"batch" mapstructure:"batch"`

	// 日志配置
	Logger LoggerConfig `json:"logger" mapstructure:"logger"`
}

// ProviderConfig 数据提供商配置
type ProviderConfig struct {
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"` // 单个 HTTP 请求超时时间
}

// BatchConfig 批量抓取配置
type BatchConfig struct {
	Concurrency    int           `json:"concurrency" mapstructure:"concurrency"`         // 并发上限，<=0 表示不设上限
	MaxAttempts    int           `json:"max_attempts" mapstructure:"max_attempts"`       // 单任务最大尝试次数
	BackoffBase    time.Duration `json:"backoff_base" mapstructure:"backoff_base"`       // 重试退避基准间隔
	AttemptTimeout time.Duration `json:"attempt_timeout" mapstructure:"attempt_timeout"` // 单次尝试超时，0 表示不限制
	ProgressBuffer int           `json:"progress_buffer" mapstructure:"progress_buffer"` // 进度更新通道缓冲区大小
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level  string `json:"level" mapstructure:"level"`   // 日志级别 (debug, info, warn, error)
	Format string `json:"format" mapstructure:"format"` // 日志格式 (text, json)
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			Timeout: 15 * time.Second,
		},
		Batch: BatchConfig{
			Concurrency:    16,
			MaxAttempts:    3,
			BackoffBase:    500 * time.Millisecond,
			AttemptTimeout: 20 * time.Second,
			ProgressBuffer: 64,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load 从配置文件加载配置，环境变量以 STOCKFETCH_ 前缀覆盖
// path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STOCKFETCH")
	v.AutomaticEnv()

	cfg := Default()
	v.SetDefault("provider.timeout", cfg.Provider.Timeout)
	v.SetDefault("batch.concurrency", cfg.Batch.Concurrency)
	v.SetDefault("batch.max_attempts", cfg.Batch.MaxAttempts)
	v.SetDefault("batch.backoff_base", cfg.Batch.BackoffBase)
	v.SetDefault("batch.attempt_timeout", cfg.Batch.AttemptTimeout)
	v.SetDefault("batch.progress_buffer", cfg.Batch.ProgressBuffer)
	v.SetDefault("logger.level", cfg.Logger.Level)
	v.SetDefault("logger.format", cfg.Logger.Format)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Provider.Timeout <= 0 {
		return errors.New("provider timeout must be positive")
	}

	if c.Batch.MaxAttempts <= 0 {
		return errors.New("batch max_attempts must be positive")
	}

	if c.Batch.BackoffBase < 0 {
		return errors.New("batch backoff_base cannot be negative")
	}

	if c.Batch.AttemptTimeout < 0 {
		return errors.New("batch attempt_timeout cannot be negative")
	}

	if c.Batch.ProgressBuffer < 0 {
		return errors.New("batch progress_buffer cannot be negative")
	}

	return nil
}

// SetConcurrency 设置批量抓取并发上限
func (c *Config) SetConcurrency(n int) *Config {
	c.Batch.Concurrency = n
	return c
}

// SetMaxAttempts 设置单任务最大尝试次数
func (c *Config) SetMaxAttempts(n int) *Config {
	c.Batch.MaxAttempts = n
	return c
}

// SetProviderTimeout 设置提供商请求超时时间
func (c *Config) SetProviderTimeout(timeout time.Duration) *Config {
	c.Provider.Timeout = timeout
	return c
}
