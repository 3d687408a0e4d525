package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"stockfetch/pkg/batch"
	"stockfetch/pkg/config"
	"stockfetch/pkg/core"
	"stockfetch/pkg/logger"
	"stockfetch/pkg/provider"
	"stockfetch/pkg/retry"
	"stockfetch/pkg/schedule"
)

// BatchExecutor 批量抓取执行器
// 既作为一次性抓取的入口，也实现 schedule.Executor 供定时任务调用
type BatchExecutor struct {
	provider provider.HistoryProvider
	cfg      *config.Config
	out      io.Writer
	showBar  bool
	log      *logger.Entry
}

// NewBatchExecutor 创建批量抓取执行器
func NewBatchExecutor(p provider.HistoryProvider, cfg *config.Config, baseLog *logger.Entry) *BatchExecutor {
	return &BatchExecutor{
		provider: p,
		cfg:      cfg,
		out:      os.Stdout,
		showBar:  true,
		log:      baseLog.WithField("executor", "batch"),
	}
}

// Execute 实现 schedule.Executor 接口，对任务配置的代码列表发起一次批量抓取
func (e *BatchExecutor) Execute(ctx context.Context, job *schedule.Job) error {
	log := e.log.WithFields(map[string]interface{}{
		"job":   job.Config.Name,
		"jobID": job.ID,
	})

	params := provider.DefaultKlineParams()
	if k := job.Config.Kline; k != nil {
		if k.Beg != "" {
			params.Beg = k.Beg
		}
		if k.End != "" {
			params.End = k.End
		}
		if k.KLT != 0 {
			params.KLT = k.KLT
		}
		if k.FQT != 0 {
			params.FQT = k.FQT
		}
	}

	results, err := e.Run(ctx, job.Config.Symbols, params)
	if err != nil {
		return err
	}

	failed := 0
	for _, entry := range results {
		if !entry.OK() {
			failed++
		}
	}
	log.Infof("任务完成: 成功 %d, 失败 %d", len(results)-failed, failed)
	return nil
}

// Run 对一组代码发起一次批量抓取，成功的结果以 CSV 形式输出
func (e *BatchExecutor) Run(ctx context.Context, codes []string, params provider.KlineParams) (batch.ResultMap, error) {
	codes = batch.Distinct(codes)
	progress := batch.NewProgress(len(codes), e.cfg.Batch.ProgressBuffer)

	scheduler := batch.New(batch.Options{
		Concurrency: e.cfg.Batch.Concurrency,
		Retry: retry.Policy{
			MaxAttempts: e.cfg.Batch.MaxAttempts,
			Backoff:     retry.LinearBackoff(e.cfg.Batch.BackoffBase),
			Classify:    retry.Classify,
		},
		AttemptTimeout: e.cfg.Batch.AttemptTimeout,
		Progress:       progress,
	})

	// 进度展示与抓取解耦，消费不过来时更新会被丢弃
	barDone := make(chan struct{})
	if updates := progress.Updates(); updates != nil {
		go func() {
			defer close(barDone)
			for state := range updates {
				if e.showBar {
					fmt.Fprintf(os.Stderr, "\r%s", state)
				}
			}
			if e.showBar {
				fmt.Fprintln(os.Stderr)
			}
		}()
	} else {
		close(barDone)
	}

	results := scheduler.RunBatch(ctx, codes, func(ctx context.Context, code string) (core.Table, error) {
		return e.provider.QuoteHistory(ctx, code, params)
	})

	if ctx.Err() != nil {
		e.log.Warnf("抓取被中断，已完成 %d/%d", len(results), len(codes))
	} else {
		<-barDone
	}

	if err := e.writeResults(results); err != nil {
		return results, err
	}
	return results, nil
}

// writeResults 将成功的结果写为 CSV，失败的代码记入日志
func (e *BatchExecutor) writeResults(results batch.ResultMap) error {
	writer := csv.NewWriter(e.out)
	defer writer.Flush()

	wroteHeader := false
	for code, entry := range results {
		if !entry.OK() {
			e.log.WithError(entry.Err).Warnf("代码 %s 抓取失败", code)
			continue
		}
		if !wroteHeader {
			if err := writer.Write(entry.Table.Columns); err != nil {
				return fmt.Errorf("写出结果失败: %w", err)
			}
			wroteHeader = true
		}
		for _, row := range entry.Table.Rows {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("写出结果失败: %w", err)
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
