package provider

import (
	"context"

	"stockfetch/pkg/core"
)

// Provider 是所有数据提供商的基础接口。
// 它定义了所有提供商都必须具备的通用功能，如名称和健康状态。
type Provider interface {
	// Name 返回提供商的名称，例如 "eastmoney"。
	Name() string

	// IsHealthy 检查提供商的健康状态。
	// 如果提供商能够正常服务，则返回 true。
	IsHealthy() bool
}

// Closable 可关闭接口
// 需要清理资源的提供商应实现此接口
type Closable interface {
	// Close 关闭提供商，清理资源
	Close() error
}

// KlineParams K 线查询参数
type KlineParams struct {
	Beg string // 开始日期，例如 "20200101"
	End string // 结束日期，例如 "20200201"
	KLT int    // K 线间距: 1=1分钟 5=5分钟 101=日 102=周
	FQT int    // 复权方式: 0=不复权 1=前复权 2=后复权
}

// DefaultKlineParams 返回默认的 K 线查询参数（全量日 K，前复权）
func DefaultKlineParams() KlineParams {
	return KlineParams{
		Beg: "19000101",
		End: "20500101",
		KLT: 101,
		FQT: 1,
	}
}

// HistoryProvider 历史行情提供商接口
// 用于获取单只股票的历史 K 线数据
type HistoryProvider interface {
	Provider

	// QuoteHistory 获取指定股票的 K 线数据。
	// 数据源明确表示该代码无数据时返回 core.ErrNoData。
	QuoteHistory(ctx context.Context, code string, params KlineParams) (core.Table, error)

	// IsSymbolSupported 检查提供商是否支持给定的股票代码。
	IsSymbolSupported(code string) bool
}

// QuoteProvider 实时行情提供商接口
type QuoteProvider interface {
	Provider

	// RealtimeQuotes 获取沪深全市场最新交易日的快照行情。
	RealtimeQuotes(ctx context.Context) (core.Table, error)

	// LatestQuotes 获取多只股票的最新价和涨跌情况。
	LatestQuotes(ctx context.Context, codes []string) (core.Table, error)

	// BaseInfo 获取单只股票的基本面信息。
	BaseInfo(ctx context.Context, code string) (core.Table, error)
}

// BillProvider 资金流向提供商接口
type BillProvider interface {
	Provider

	// HistoryBill 获取指定股票的历史日级资金流向。
	HistoryBill(ctx context.Context, code string) (core.Table, error)

	// TodayBill 获取指定股票当日分钟级资金流向。
	TodayBill(ctx context.Context, code string) (core.Table, error)
}

// HolderProvider 股东信息提供商接口
type HolderProvider interface {
	Provider

	// Top10Holders 获取最近 top 期的前十大流通股东信息。
	Top10Holders(ctx context.Context, code string, top int) (core.Table, error)
}
