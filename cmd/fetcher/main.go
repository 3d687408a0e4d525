package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"stockfetch/pkg/config"
	"stockfetch/pkg/logger"
	"stockfetch/pkg/provider"
	"stockfetch/pkg/provider/decorators"
	"stockfetch/pkg/provider/eastmoney"
	"stockfetch/pkg/schedule"
)

var (
	configPath  = flag.String("config", "", "配置文件路径（可选）")
	jobsPath    = flag.String("jobs", "", "定时任务配置文件路径，设置后进入定时模式")
	symbols     = flag.String("symbols", "", "股票代码列表，逗号分隔，例如 600000,000001")
	beg         = flag.String("beg", "", "开始日期，例如 20200101")
	end         = flag.String("end", "", "结束日期，例如 20200201")
	klt         = flag.Int("klt", 101, "K 线间距: 1=1分钟 5=5分钟 101=日 102=周")
	fqt         = flag.Int("fqt", 1, "复权方式: 0=不复权 1=前复权 2=后复权")
	concurrency = flag.Int("concurrency", 0, "并发上限，覆盖配置文件，<=0 使用配置值")
	retries     = flag.Int("retries", 0, "单只股票最大尝试次数，覆盖配置文件")
	logLevel    = flag.String("log-level", "", "日志级别，覆盖配置文件")
	logFormat   = flag.String("log-format", "", "日志格式 (json 或 text)，覆盖配置文件")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("加载配置失败: %v", err)
		os.Exit(1)
	}
	if *concurrency > 0 {
		cfg.SetConcurrency(*concurrency)
	}
	if *retries > 0 {
		cfg.SetMaxAttempts(*retries)
	}
	if *logLevel != "" {
		cfg.Logger.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logger.Format = *logFormat
	}

	logger.Init(logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	})
	log := logger.WithComponent("fetcher")

	// 中断信号统一转为 ctx 取消，批次收到取消后返回部分结果
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	em := eastmoney.NewProvider()
	em.SetTimeout(cfg.Provider.Timeout)
	defer em.Close()

	breaker := decorators.NewCircuitBreakerProvider(em, nil)
	executor := NewBatchExecutor(breaker, cfg, log)

	if *jobsPath != "" {
		runScheduled(ctx, log, executor, *jobsPath)
		return
	}

	codes := splitSymbols(*symbols)
	if len(codes) == 0 {
		log.Error("未指定股票代码，使用 -symbols 600000,000001")
		flag.Usage()
		os.Exit(2)
	}

	params := provider.DefaultKlineParams()
	if *beg != "" {
		params.Beg = *beg
	}
	if *end != "" {
		params.End = *end
	}
	params.KLT = *klt
	params.FQT = *fqt

	log.Infof("开始抓取 %d 只股票的 K 线数据", len(codes))
	results, err := executor.Run(ctx, codes, params)
	if err != nil {
		log.Errorf("抓取失败: %v", err)
		os.Exit(1)
	}

	if ctx.Err() != nil {
		log.Warnf("收到中断信号，输出部分结果: %d/%d", len(results), len(codes))
	}
}

// runScheduled 定时模式：按 jobs 配置周期性执行批量抓取
func runScheduled(ctx context.Context, log *logger.Entry, executor *BatchExecutor, jobsPath string) {
	scheduler := schedule.NewScheduler()
	scheduler.SetExecutor(executor)

	if err := scheduler.LoadConfig(jobsPath); err != nil {
		log.Errorf("加载任务配置失败: %v", err)
		os.Exit(1)
	}

	if err := scheduler.Start(); err != nil {
		log.Errorf("启动调度器失败: %v", err)
		os.Exit(1)
	}

	log.Info("定时模式已启动，Ctrl+C 退出")
	<-ctx.Done()

	log.Info("收到中断信号，停止调度器")
	if err := scheduler.Stop(); err != nil {
		log.Errorf("停止调度器失败: %v", err)
	}
}

// splitSymbols 解析逗号分隔的代码列表
func splitSymbols(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.TrimSpace(part)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
