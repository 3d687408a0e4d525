package batch

import (
	"context"
	"time"

	"stockfetch/pkg/core"
	"stockfetch/pkg/retry"
)

// FetchFunc 单只股票的抓取操作
// 由调用方绑定好请求参数后传入，批次层只负责并发调度和重试
type FetchFunc func(ctx context.Context, code string) (core.Table, error)

// ResultEntry 一只股票的终态结果
// 失败时 Table 为空表，Err 记录终态错误；成功时 Err 为 nil
type ResultEntry struct {
	Code  string     // 股票代码
	Table core.Table // 抓取到的表格数据
	Err   error      // 终态错误，nil 表示成功
}

// OK 判断该条结果是否成功
func (e ResultEntry) OK() bool {
	return e.Err == nil
}

// ResultMap 股票代码到终态结果的映射
// 插入顺序由完成顺序决定，与输入顺序无关
type ResultMap map[string]ResultEntry

// Options 批次执行选项
type Options struct {
	// Concurrency 并发上限，<=0 表示每只股票一个 goroutine（不设上限）
	Concurrency int

	// Retry 单任务重试策略，零值时使用 retry.DefaultPolicy
	Retry retry.Policy

	// AttemptTimeout 单次抓取尝试的超时时间，<=0 表示不限制
	AttemptTimeout time.Duration

	// Progress 进度上报器，nil 表示不上报
	Progress *Progress
}
