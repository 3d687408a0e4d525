package schedule

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"stockfetch/pkg/logger"
	"stockfetch/pkg/timing"
)

// jobTimeout 单次任务执行的超时时间
const jobTimeout = 5 * time.Minute

// Scheduler 定时抓取任务调度器
// 按 cron 表达式周期性地触发批量抓取任务
type Scheduler struct {
	cron     *cron.Cron
	jobs     map[string]*Job
	executor Executor
	session  *timing.Session
	mu       sync.RWMutex
	log      *logrus.Entry
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler 创建任务调度器
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		jobs:    make(map[string]*Job),
		session: timing.DefaultSession(),
		log:     logger.WithComponent("Scheduler"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetSession 替换交易时段检测器，主要用于测试
func (s *Scheduler) SetSession(session *timing.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// LoadConfig 从 YAML 配置文件加载任务配置
func (s *Scheduler) LoadConfig(configPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("配置文件不存在: %s", configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config JobsConfig
	if err := v.Unmarshal(&config); err != nil {
		return fmt.Errorf("解析配置文件失败: %w", err)
	}

	for _, jobConfig := range config.Jobs {
		if err := s.validateJobConfig(jobConfig); err != nil {
			s.log.WithError(err).Warnf("跳过无效任务配置: %s", jobConfig.Name)
			continue
		}

		if err := s.addJobInternal(jobConfig); err != nil {
			s.log.WithError(err).Errorf("添加任务失败: %s", jobConfig.Name)
			continue
		}
	}

	s.log.Infof("成功加载 %d 个任务配置", len(s.jobs))
	return nil
}

// Start 启动调度器
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.executor == nil {
		return fmt.Errorf("任务执行器未设置")
	}

	s.cron.Start()
	s.log.Info("任务调度器已启动")

	s.updateNextRunTimes()
	return nil
}

// Stop 停止调度器，等待在途任务结束
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	ctx := s.cron.Stop()

	select {
	case <-ctx.Done():
		s.log.Info("任务调度器已停止")
	case <-time.After(30 * time.Second):
		s.log.Warn("任务调度器停止超时")
	}

	return nil
}

// AddJob 添加任务
func (s *Scheduler) AddJob(config JobConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateJobConfig(config); err != nil {
		return err
	}

	return s.addJobInternal(config)
}

// RemoveJob 移除任务
func (s *Scheduler) RemoveJob(jobName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[jobName]
	if !exists {
		return fmt.Errorf("任务不存在: %s", jobName)
	}

	s.cron.Remove(job.EntryID)
	delete(s.jobs, jobName)

	s.log.Infof("任务已移除: %s", jobName)
	return nil
}

// GetJob 获取任务状态
func (s *Scheduler) GetJob(jobName string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[jobName]
	if !exists {
		return nil, fmt.Errorf("任务不存在: %s", jobName)
	}

	jobCopy := *job
	return &jobCopy, nil
}

// GetAllJobs 获取所有任务
func (s *Scheduler) GetAllJobs() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobCopy := *job
		jobs = append(jobs, &jobCopy)
	}

	return jobs
}

// RunJob 手动执行任务
func (s *Scheduler) RunJob(jobName string) error {
	s.mu.RLock()
	job, exists := s.jobs[jobName]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("任务不存在: %s", jobName)
	}

	if !job.Config.Enabled {
		return fmt.Errorf("任务已禁用: %s", jobName)
	}

	go s.executeJob(job)
	return nil
}

// SetExecutor 设置任务执行器
func (s *Scheduler) SetExecutor(executor Executor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executor = executor
}

// validateJobConfig 验证任务配置
func (s *Scheduler) validateJobConfig(config JobConfig) error {
	if config.Name == "" {
		return fmt.Errorf("任务名称不能为空")
	}

	if config.Schedule == "" {
		return fmt.Errorf("任务调度表达式不能为空")
	}

	// 验证 cron 表达式 - 支持秒级调度
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(config.Schedule); err != nil {
		return fmt.Errorf("无效的调度表达式 '%s': %w", config.Schedule, err)
	}

	if len(config.Symbols) == 0 {
		return fmt.Errorf("任务股票代码列表不能为空")
	}

	return nil
}

// addJobInternal 内部添加任务方法（需要持有锁）
func (s *Scheduler) addJobInternal(config JobConfig) error {
	if _, exists := s.jobs[config.Name]; exists {
		return fmt.Errorf("任务已存在: %s", config.Name)
	}

	job := &Job{
		ID:     uuid.New().String(),
		Config: config,
		Status: JobStatusPending,
	}

	if !config.Enabled {
		job.Status = JobStatusDisabled
		s.jobs[config.Name] = job
		s.log.Infof("任务已添加（已禁用）: %s", config.Name)
		return nil
	}

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.executeJob(job)
	})
	if err != nil {
		return fmt.Errorf("添加任务到调度器失败: %w", err)
	}

	job.EntryID = entryID
	s.jobs[config.Name] = job

	s.log.Infof("任务已添加: %s (调度: %s)", config.Name, config.Schedule)
	return nil
}

// executeJob 执行任务
func (s *Scheduler) executeJob(job *Job) {
	s.mu.Lock()
	if job.Config.TradingOnly && !s.session.IsTradingTime() {
		nextOpen := s.session.NextOpen()
		s.mu.Unlock()
		s.log.Debugf("非交易时段，跳过任务: %s，下次开盘 %s",
			job.Config.Name, nextOpen.Format("2006-01-02 15:04"))
		return
	}
	if job.Status == JobStatusRunning {
		s.mu.Unlock()
		s.log.Warnf("任务正在运行，跳过本次执行: %s", job.Config.Name)
		return
	}
	job.Status = JobStatusRunning
	now := time.Now()
	job.LastRun = &now
	job.RunCount++
	s.mu.Unlock()

	s.log.Infof("开始执行任务: %s", job.Config.Name)

	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	err := s.executor.Execute(ctx, job)

	s.mu.Lock()
	if err != nil {
		job.Status = JobStatusError
		job.LastError = err
		job.ErrorCount++
		s.log.WithError(err).Errorf("任务执行失败: %s", job.Config.Name)
	} else {
		job.Status = JobStatusPending
		job.LastError = nil
		s.log.Infof("任务执行成功: %s", job.Config.Name)
	}
	s.mu.Unlock()
}

// updateNextRunTimes 更新所有任务的下次运行时间
func (s *Scheduler) updateNextRunTimes() {
	entries := s.cron.Entries()
	for _, job := range s.jobs {
		if job.Config.Enabled {
			for _, entry := range entries {
				if entry.ID == job.EntryID {
					nextRun := entry.Next
					job.NextRun = &nextRun
					break
				}
			}
		}
	}
}
