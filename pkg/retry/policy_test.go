package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfetch/pkg/core"
)

func TestPolicy_Do_SuccessAfterTransientFailures(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Backoff: NoBackoff()}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls <= 2 {
			return errors.New("connection timeout")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls, "前两次临时失败应被重试掩盖")
}

func TestPolicy_Do_TransientExhausted(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Backoff: NoBackoff()}

	transient := errors.New("read tcp: connection reset")
	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return transient
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, transient, "应返回最后一次临时错误")
	assert.Equal(t, 3, calls, "尝试次数应恰好等于最大次数")
}

func TestPolicy_Do_PermanentShortCircuits(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Backoff: NoBackoff()}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return fmt.Errorf("fetch: %w", core.ErrNoData)
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNoData)
	assert.Equal(t, 1, calls, "永久性错误不允许重试")
}

func TestPolicy_Do_ContextCanceled(t *testing.T) {
	policy := Policy{MaxAttempts: 5, Backoff: LinearBackoff(time.Hour)}

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.New("timeout")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "取消后不应再发起新的尝试")
}

func TestPolicy_Do_CanceledResultNotRetried(t *testing.T) {
	policy := Policy{MaxAttempts: 3, Backoff: NoBackoff()}

	calls := 0
	err := policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicy_Do_ZeroMaxAttempts(t *testing.T) {
	policy := Policy{MaxAttempts: 0, Backoff: NoBackoff()}

	calls := 0
	_ = policy.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("timeout")
	})

	assert.Equal(t, 1, calls, "非法的最大次数按一次处理")
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(time.Second)
	assert.Equal(t, 1*time.Second, backoff(1))
	assert.Equal(t, 3*time.Second, backoff(3))
}
