package retry

import (
	"context"
	"errors"
	"net"
	"strings"

	"stockfetch/pkg/core"
)

// Class 错误分类
type Class int

const (
	// ClassTransient 临时性错误（网络、超时），允许重试
	ClassTransient Class = iota
	// ClassPermanent 永久性错误（无数据、代码非法），重试没有意义
	ClassPermanent
)

// Classifier 根据错误内容判定错误分类
type Classifier func(err error) Class

// Classify 默认错误分类实现
//
// 永久性错误：数据源明确表示无数据、代码无效，以及典型的客户端错误。
// 其余一律视为临时性错误，交给重试策略处理。
func Classify(err error) Class {
	if err == nil {
		return ClassTransient
	}

	if errors.Is(err, core.ErrNoData) ||
		errors.Is(err, core.ErrInvalidSymbol) ||
		errors.Is(err, core.ErrEmptySymbols) ||
		errors.Is(err, core.ErrProviderClosed) {
		return ClassPermanent
	}

	// 网络层的超时错误明确可重试
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTransient
	}

	// HTTP 状态码按结构化错误判断，消息里可能包含
	// 与状态码同形的股票代码，不做文本匹配
	var statusErr *core.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code >= 400 && statusErr.Code < 500 {
			return ClassPermanent
		}
		return ClassTransient
	}

	msg := strings.ToLower(err.Error())

	// 客户端侧问题，重试结果不会变化
	switch {
	case strings.Contains(msg, "invalid argument"):
		return ClassPermanent
	case strings.Contains(msg, "bad request"):
		return ClassPermanent
	}

	return ClassTransient
}

// IsCanceled 判断错误是否为上下文取消或超时
// 取消属于批次级信号，不进入重试也不计入错误分类
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
