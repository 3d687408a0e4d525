package core

import (
	"errors"
	"fmt"
)

// 定义核心错误
var (
	// ErrNoData 数据源明确表示该代码没有数据
	ErrNoData = errors.New("no data for symbol")

	// ErrInvalidSymbol 无效的股票代码错误
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrEmptySymbols 股票代码列表为空错误
	ErrEmptySymbols = errors.New("symbols list is empty")

	// ErrProviderClosed 提供商已关闭错误
	ErrProviderClosed = errors.New("provider is closed")
)

// StatusError 非 200 的 HTTP 响应状态
// 以结构化的状态码透出，错误分类按 Code 判断而不解析消息文本
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP status error: %d", e.Code)
}
