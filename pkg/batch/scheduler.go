package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"stockfetch/pkg/core"
	"stockfetch/pkg/logger"
	"stockfetch/pkg/retry"
)

// errAttemptTimeout 单次抓取尝试超时
// 区别于批次级取消，属于临时性错误，允许继续重试
var errAttemptTimeout = errors.New("fetch attempt timeout")

// Scheduler 批量抓取调度器
// 为每只股票派发一个带重试的抓取任务，聚合全部终态结果
type Scheduler struct {
	opts   Options
	policy retry.Policy
	log    *logrus.Entry
}

// New 创建批量抓取调度器
// 未设置重试策略时使用默认策略
func New(opts Options) *Scheduler {
	policy := opts.Retry
	if policy.MaxAttempts == 0 {
		policy = retry.DefaultPolicy()
	}

	return &Scheduler{
		opts:   opts,
		policy: policy,
		log:    logger.WithComponent("BatchScheduler"),
	}
}

// RunBatch 并发抓取一组股票代码，阻塞到全部任务终态或 ctx 取消
//
// 单只股票的抓取失败不会中断批次：重试耗尽或永久性错误都会
// 落账为带空表的占位结果。ctx 取消时立即返回已完成部分的快照，
// 未完成的代码在结果中缺席，这是一种约定内的部分成功而非错误。
func (s *Scheduler) RunBatch(ctx context.Context, codes []string, fetch FetchFunc) ResultMap {
	distinct := Distinct(codes)
	if len(distinct) == 0 {
		return ResultMap{}
	}

	batchID := uuid.NewString()[:8]
	log := s.log.WithField("batch", batchID)
	log.Infof("开始批量抓取 %d 只股票", len(distinct))

	agg := NewAggregator()
	progress := s.opts.Progress

	var wg sync.WaitGroup
	runTask := func(code string) {
		entry := s.execute(ctx, code, fetch)
		if entry == nil {
			// 批次被取消，该代码在结果中保持缺席
			return
		}
		agg.Record(*entry)
		if progress != nil {
			progress.Advance(code)
		}
	}

	if s.opts.Concurrency <= 0 {
		// 参考行为：每只股票一个 goroutine，不设并发上限
		for _, code := range distinct {
			wg.Add(1)
			go func(code string) {
				defer wg.Done()
				runTask(code)
			}(code)
		}
	} else {
		workers := min(s.opts.Concurrency, len(distinct))
		queue := make(chan string)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for code := range queue {
					runTask(code)
				}
			}()
		}

		go func() {
			defer close(queue)
			for _, code := range distinct {
				select {
				case queue <- code:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if progress != nil {
			progress.Close()
		}
		log.Infof("批量抓取完成: %d/%d", agg.Len(), len(distinct))
	case <-ctx.Done():
		// 在途任务随 ctx 终止，不等待收尾，直接返回部分快照
		log.Warnf("批次被取消，返回部分结果: %d/%d", agg.Len(), len(distinct))
		if progress != nil {
			go func() {
				<-done
				progress.Close()
			}()
		}
	}

	return agg.Snapshot()
}

// execute 执行单只股票的抓取任务，返回终态结果
// 批次被取消时返回 nil，表示不落账
func (s *Scheduler) execute(ctx context.Context, code string, fetch FetchFunc) *ResultEntry {
	var table core.Table

	err := s.policy.Do(ctx, func(ctx context.Context) error {
		attemptCtx := ctx
		if s.opts.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, s.opts.AttemptTimeout)
			defer cancel()
		}

		t, ferr := fetch(attemptCtx, code)
		if ferr != nil {
			// 单次尝试超时且批次仍存活时转为临时错误继续重试
			if retry.IsCanceled(ferr) && ctx.Err() == nil {
				return fmt.Errorf("%s: %w", code, errAttemptTimeout)
			}
			return ferr
		}

		table = t
		return nil
	})

	if err != nil {
		if retry.IsCanceled(err) || ctx.Err() != nil {
			return nil
		}
		return &ResultEntry{Code: code, Table: core.Table{}, Err: err}
	}

	return &ResultEntry{Code: code, Table: table}
}

// Distinct 去重并保持首次出现的顺序
// RunBatch 内部会去重，进度上报器的总数需要按同样的口径计算
func Distinct(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	distinct := make([]string, 0, len(codes))
	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		distinct = append(distinct, code)
	}
	return distinct
}
