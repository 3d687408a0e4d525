package eastmoney

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"stockfetch/pkg/logger"
	"stockfetch/pkg/market"
)

// 各接口使用的固定令牌，来自行情客户端抓包
const (
	utStockInfo   = "fa5fd1943c7b386f172d6893dbfba10b"
	utTodayBill   = "b2884a393a59ad64002292a3e90d46a5"
	utLatestQuote = "94dd9fba6f4581ffc558a7b1a7c2b8a3"
)

// Provider 东方财富数据提供商
type Provider struct {
	httpClient *http.Client
	userAgent  string
	log        *logrus.Entry

	// 端点基地址，测试时指向本地 mock 服务
	pushURL    string
	pushHisURL string
	emh5URL    string
}

// NewProvider 创建东方财富数据提供商
func NewProvider() *Provider {
	return &Provider{
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
			Timeout: 15 * time.Second,
		},
		userAgent:  "Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
		log:        logger.WithComponent("EastmoneyProvider"),
		pushURL:    "https://push2.eastmoney.com",
		pushHisURL: "https://push2his.eastmoney.com",
		emh5URL:    "https://emh5.eastmoney.com",
	}
}

// Name 返回提供商名称
func (p *Provider) Name() string {
	return "eastmoney"
}

// IsHealthy 检查提供商健康状态
func (p *Provider) IsHealthy() bool {
	return p.httpClient != nil
}

// SetTimeout 设置请求超时时间
func (p *Provider) SetTimeout(timeout time.Duration) {
	p.httpClient.Timeout = timeout
}

// Close 关闭提供商，清理资源
func (p *Provider) Close() error {
	if p.httpClient != nil {
		p.httpClient.CloseIdleConnections()
	}
	return nil
}

// IsSymbolSupported 检查是否支持该股票代码
// 仅支持能推导出市场分类的 6 位代码
func (p *Provider) IsSymbolSupported(code string) bool {
	return market.Classify(code) != market.ClassUnknown
}
