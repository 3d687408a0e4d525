package decorators

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"stockfetch/pkg/core"
	"stockfetch/pkg/logger"
	"stockfetch/pkg/provider"
)

// CircuitBreakerProvider 熔断器装饰器
// 使用 sony/gobreaker 包装历史行情提供商，连续失败达到阈值后
// 快速失败一段时间，避免持续压垮不可用的数据源
type CircuitBreakerProvider struct {
	base   provider.HistoryProvider
	cb     *gobreaker.CircuitBreaker
	config *CircuitBreakerConfig
	log    *logrus.Entry

	mu    sync.RWMutex
	stats CircuitBreakerStats
}

// CircuitBreakerConfig 熔断器配置
type CircuitBreakerConfig struct {
	Name        string        `yaml:"name"`          // 熔断器名称
	MaxRequests uint32        `yaml:"max_requests"`  // 半开状态下的最大请求数
	Interval    time.Duration `yaml:"interval"`      // 统计窗口时间
	Timeout     time.Duration `yaml:"timeout"`       // 熔断器打开后的超时时间
	ReadyToTrip uint32        `yaml:"ready_to_trip"` // 触发熔断的连续失败次数阈值
	Enabled     bool          `yaml:"enabled"`       // 是否启用熔断器
}

// CircuitBreakerStats 熔断器统计信息
type CircuitBreakerStats struct {
	TotalRequests      int64     `json:"total_requests"`
	SuccessfulRequests int64     `json:"successful_requests"`
	FailedRequests     int64     `json:"failed_requests"`
	LastFailure        time.Time `json:"last_failure"`
}

// DefaultCircuitBreakerConfig 默认熔断器配置
func DefaultCircuitBreakerConfig() *CircuitBreakerConfig {
	return &CircuitBreakerConfig{
		Name:        "HistoryProvider",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: 5,
		Enabled:     true,
	}
}

// NewCircuitBreakerProvider 创建熔断器装饰器
func NewCircuitBreakerProvider(base provider.HistoryProvider, config *CircuitBreakerConfig) *CircuitBreakerProvider {
	if config == nil {
		config = DefaultCircuitBreakerConfig()
	}

	log := logger.WithComponent("CircuitBreaker")

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.ReadyToTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warnf("熔断器 %s 状态从 %v 变更为 %v", name, from, to)
		},
	}

	return &CircuitBreakerProvider{
		base:   base,
		cb:     gobreaker.NewCircuitBreaker(settings),
		config: config,
		log:    log,
	}
}

// Name 返回装饰器名称
func (c *CircuitBreakerProvider) Name() string {
	return fmt.Sprintf("CircuitBreaker(%s)", c.base.Name())
}

// IsHealthy 检查健康状态，熔断器打开状态视为不健康
func (c *CircuitBreakerProvider) IsHealthy() bool {
	if !c.config.Enabled {
		return c.base.IsHealthy()
	}
	return c.cb.State() != gobreaker.StateOpen && c.base.IsHealthy()
}

// IsSymbolSupported 透传到基础提供商
func (c *CircuitBreakerProvider) IsSymbolSupported(code string) bool {
	return c.base.IsSymbolSupported(code)
}

// QuoteHistory 实现带熔断器的 K 线数据获取
func (c *CircuitBreakerProvider) QuoteHistory(ctx context.Context, code string, params provider.KlineParams) (core.Table, error) {
	if !c.config.Enabled {
		return c.base.QuoteHistory(ctx, code, params)
	}

	c.mu.Lock()
	c.stats.TotalRequests++
	c.mu.Unlock()

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.base.QuoteHistory(ctx, code, params)
	})

	c.mu.Lock()
	if err != nil {
		c.stats.FailedRequests++
		c.stats.LastFailure = time.Now()
	} else {
		c.stats.SuccessfulRequests++
	}
	c.mu.Unlock()

	if err != nil {
		return core.Table{}, err
	}
	return result.(core.Table), nil
}

// Stats 返回熔断器统计信息
func (c *CircuitBreakerProvider) Stats() CircuitBreakerStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// State 返回当前熔断器状态
func (c *CircuitBreakerProvider) State() gobreaker.State {
	return c.cb.State()
}
