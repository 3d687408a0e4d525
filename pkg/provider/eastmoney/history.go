package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"stockfetch/pkg/core"
	"stockfetch/pkg/market"
	"stockfetch/pkg/provider"
)

// klineResponse K 线接口响应
type klineResponse struct {
	Data *struct {
		Code   string   `json:"code"`
		Name   string   `json:"name"`
		Klines []string `json:"klines"`
	} `json:"data"`
}

// QuoteHistory 获取单只股票的 K 线数据
//
// 返回的表格在 K 线列之前附带股票名称和股票代码两列。
// 数据源对该代码返回空 data 时视为无数据，返回 core.ErrNoData。
func (p *Provider) QuoteHistory(ctx context.Context, code string, params provider.KlineParams) (core.Table, error) {
	if !p.IsSymbolSupported(code) {
		return core.Table{}, fmt.Errorf("quote history %s: %w", code, core.ErrInvalidSymbol)
	}

	query := url.Values{
		"fields1": {"f1,f2,f3,f4,f5,f6,f7,f8,f9,f10,f11,f12,f13"},
		"fields2": {strings.Join(klineFields, ",")},
		"beg":     {params.Beg},
		"end":     {params.End},
		"rtntype": {"6"},
		"secid":   {market.SecID(code)},
		"klt":     {strconv.Itoa(params.KLT)},
		"fqt":     {strconv.Itoa(params.FQT)},
	}

	body, err := p.getJSON(ctx, p.pushHisURL+"/api/qt/stock/kline/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("quote history %s: %w", code, err)
	}

	var resp klineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("quote history %s: decode response failed: %w", code, err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("quote history %s: %w", code, core.ErrNoData)
	}

	table := parseKlines(resp.Data.Klines, klineColumns)
	table.InsertColumn(0, "code", code)
	table.InsertColumn(0, "name", resp.Data.Name)
	return table, nil
}

// parseKlines 将逗号分隔的 K 线字符串解析为表格
// 字段数不符的行直接跳过
func parseKlines(klines []string, columns []string) core.Table {
	table := core.NewTable(columns...)
	for _, kline := range klines {
		row := strings.Split(kline, ",")
		if len(row) != len(columns) {
			continue
		}
		table.AppendRow(row)
	}
	return table
}
