package schedule

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// JobConfig 定义单个定时抓取任务的配置
type JobConfig struct {
	Name     string       `yaml:"name" json:"name"`
	Enabled  bool         `yaml:"enabled" json:"enabled"`
	Schedule string       `yaml:"schedule" json:"schedule"`
	Symbols  []string     `yaml:"symbols" json:"symbols"`
	Kline    *KlineConfig `yaml:"kline,omitempty" json:"kline,omitempty"`

	// TradingOnly 为 true 时只在 A 股交易时段内执行
	TradingOnly bool `yaml:"trading_only" json:"trading_only"`
}

// KlineConfig 任务的 K 线查询参数，省略时使用默认参数
type KlineConfig struct {
	Beg string `yaml:"beg" json:"beg"`
	End string `yaml:"end" json:"end"`
	KLT int    `yaml:"klt" json:"klt"`
	FQT int    `yaml:"fqt" json:"fqt"`
}

// JobsConfig 定义整个任务配置文件结构
type JobsConfig struct {
	Jobs []JobConfig `yaml:"jobs" json:"jobs"`
}

// Job 表示一个运行中的任务
type Job struct {
	ID         string
	Config     JobConfig
	EntryID    cron.EntryID
	Status     JobStatus
	LastRun    *time.Time
	NextRun    *time.Time
	RunCount   int64
	ErrorCount int64
	LastError  error
}

// JobStatus 任务状态
type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusRunning  JobStatus = "running"
	JobStatusError    JobStatus = "error"
	JobStatusDisabled JobStatus = "disabled"
)

// Executor 任务执行器接口
// 由调用方实现，负责对任务配置的代码列表发起一次批量抓取
type Executor interface {
	Execute(ctx context.Context, job *Job) error
}
