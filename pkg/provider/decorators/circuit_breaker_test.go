package decorators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfetch/pkg/core"
	"stockfetch/pkg/provider"
)

// fakeHistoryProvider 可控的历史行情提供商桩
type fakeHistoryProvider struct {
	err   error
	calls int
}

func (f *fakeHistoryProvider) Name() string                  { return "fake" }
func (f *fakeHistoryProvider) IsHealthy() bool               { return true }
func (f *fakeHistoryProvider) IsSymbolSupported(string) bool { return true }
func (f *fakeHistoryProvider) QuoteHistory(ctx context.Context, code string, params provider.KlineParams) (core.Table, error) {
	f.calls++
	if f.err != nil {
		return core.Table{}, f.err
	}
	t := core.NewTable("date", "close")
	t.AppendRow([]string{"2024-01-02", "7.10"})
	return t, nil
}

func TestCircuitBreaker_PassThroughOnSuccess(t *testing.T) {
	fake := &fakeHistoryProvider{}
	cb := NewCircuitBreakerProvider(fake, nil)

	table, err := cb.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())

	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "CircuitBreaker(fake)", cb.Name())
	assert.True(t, cb.IsHealthy())

	stats := cb.Stats()
	assert.Equal(t, int64(1), stats.TotalRequests)
	assert.Equal(t, int64(1), stats.SuccessfulRequests)
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	fake := &fakeHistoryProvider{err: errors.New("connection timeout")}
	cb := NewCircuitBreakerProvider(fake, &CircuitBreakerConfig{
		Name:        "test",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: 3,
		Enabled:     true,
	})

	for i := 0; i < 3; i++ {
		_, err := cb.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())
		require.Error(t, err)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State(), "连续失败达到阈值后应熔断")
	assert.False(t, cb.IsHealthy())

	// 熔断打开后请求被快速拒绝，不再触达基础提供商
	before := fake.calls
	_, err := cb.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())
	require.Error(t, err)
	assert.Equal(t, before, fake.calls)
}

func TestCircuitBreaker_DisabledBypassesBreaker(t *testing.T) {
	fake := &fakeHistoryProvider{err: errors.New("connection timeout")}
	cb := NewCircuitBreakerProvider(fake, &CircuitBreakerConfig{Enabled: false})

	for i := 0; i < 10; i++ {
		_, err := cb.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())
		require.Error(t, err)
	}

	assert.Equal(t, 10, fake.calls, "禁用时每次请求都应透传")
	assert.True(t, cb.IsHealthy())
}
