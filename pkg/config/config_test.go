package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 3, cfg.Batch.MaxAttempts)
	assert.Equal(t, 16, cfg.Batch.Concurrency)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"超时为零", func(c *Config) { c.Provider.Timeout = 0 }},
		{"尝试次数为零", func(c *Config) { c.Batch.MaxAttempts = 0 }},
		{"负的退避间隔", func(c *Config) { c.Batch.BackoffBase = -time.Second }},
		{"负的尝试超时", func(c *Config) { c.Batch.AttemptTimeout = -time.Second }},
		{"负的进度缓冲", func(c *Config) { c.Batch.ProgressBuffer = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
provider:
  timeout: 5s
batch:
  concurrency: 4
  max_attempts: 2
logger:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 4, cfg.Batch.Concurrency)
	assert.Equal(t, 2, cfg.Batch.MaxAttempts)
	assert.Equal(t, "debug", cfg.Logger.Level)
	// 未出现在文件中的字段保持默认值
	assert.Equal(t, 500*time.Millisecond, cfg.Batch.BackoffBase)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Batch.MaxAttempts, cfg.Batch.MaxAttempts)
}

func TestSetters(t *testing.T) {
	cfg := Default().SetConcurrency(8).SetMaxAttempts(5).SetProviderTimeout(time.Second)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, 5, cfg.Batch.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Provider.Timeout)
}
