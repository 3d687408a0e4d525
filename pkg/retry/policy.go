package retry

import (
	"context"
	"time"
)

const (
	// DefaultMaxAttempts 默认最大尝试次数
	DefaultMaxAttempts = 3
	// DefaultBackoffBase 默认退避基准间隔
	DefaultBackoffBase = 500 * time.Millisecond
)

// BackoffFunc 根据已失败的尝试次数返回下一次重试前的等待时间
// attempt 从 1 开始计数
type BackoffFunc func(attempt int) time.Duration

// LinearBackoff 线性退避：第 n 次失败后等待 n*base
func LinearBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * base
	}
}

// NoBackoff 不等待，立即重试
func NoBackoff() BackoffFunc {
	return func(int) time.Duration { return 0 }
}

// Policy 重试策略
// 以显式的值对象描述重试行为，便于按批次配置和测试
type Policy struct {
	MaxAttempts int         // 最大尝试次数（含首次），<=0 时按 1 处理
	Backoff     BackoffFunc // 重试前的等待时间，nil 表示不等待
	Classify    Classifier  // 错误分类器，nil 时使用默认分类
}

// DefaultPolicy 返回默认重试策略：3 次尝试，线性退避
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     LinearBackoff(DefaultBackoffBase),
		Classify:    Classify,
	}
}

// Do 执行 op 并按策略重试
//
// 临时性错误最多重试到 MaxAttempts 次，超出后返回最后一次错误；
// 永久性错误立即返回；上下文取消立即返回取消错误，不再重试。
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	classify := p.Classify
	if classify == nil {
		classify = Classify
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if IsCanceled(lastErr) {
			return lastErr
		}
		if classify(lastErr) == ClassPermanent {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		if p.Backoff != nil {
			if wait := p.Backoff(attempt); wait > 0 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
				}
			}
		}
	}

	return lastErr
}
