package eastmoney

// 行情接口的字段由 f 编号标识，这里维护字段编号到列名的对应关系。
// 编号列表与列名列表按下标一一对应。

// K 线字段 (fields2)
var (
	klineFields = []string{
		"f51", "f52", "f53", "f54", "f55", "f56", "f57", "f58", "f59", "f60", "f61",
	}
	klineColumns = []string{
		"date", "open", "close", "high", "low", "volume", "turnover",
		"amplitude", "change_percent", "change", "turnover_rate",
	}
)

// 全市场快照字段 (clist)
var (
	quoteFields = []string{
		"f12", "f14", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9", "f10",
		"f15", "f16", "f17", "f18", "f23",
	}
	quoteColumns = []string{
		"code", "name", "price", "change_percent", "change", "volume",
		"turnover", "amplitude", "turnover_rate", "pe", "volume_ratio",
		"high", "low", "open", "prev_close", "pb",
	}
)

// 单股基本面字段 (stock/get)
var (
	stockInfoFields = []string{
		"f57", "f58", "f162", "f167", "f127", "f116", "f117", "f173", "f183", "f105",
	}
	stockInfoColumns = []string{
		"code", "name", "pe_dynamic", "pb", "industry",
		"total_market_cap", "float_market_cap", "roe", "revenue", "net_profit",
	}
)

// 资金流向字段 (fflow)
var (
	billFields = []string{
		"f51", "f52", "f53", "f54", "f55", "f56", "f57", "f58", "f59", "f60", "f61",
	}
	billColumns = []string{
		"date", "main_net_inflow", "small_net_inflow", "mid_net_inflow",
		"big_net_inflow", "huge_net_inflow", "main_net_inflow_percent",
		"small_net_inflow_percent", "mid_net_inflow_percent",
		"big_net_inflow_percent", "huge_net_inflow_percent",
	}
)

// 多股最新行情字段 (ulist.np)
var (
	latestQuoteFields = []string{
		"f12", "f14", "f2", "f3",
	}
	latestQuoteColumns = []string{
		"code", "name", "price", "change_percent",
	}
)

// 前十大流通股东列名
var holderColumns = []string{
	"code", "report_date", "holder_code", "holder_name",
	"shares", "ratio", "change", "change_ratio",
}
