package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"stockfetch/pkg/core"
	"stockfetch/pkg/market"
)

// listResponse 列表型接口响应 (clist / ulist.np)
type listResponse struct {
	Data *struct {
		Diff []map[string]interface{} `json:"diff"`
	} `json:"data"`
}

// infoResponse 单股基本面接口响应
type infoResponse struct {
	Data map[string]interface{} `json:"data"`
}

// RealtimeQuotes 获取沪深全市场股票最新交易日的快照行情
func (p *Provider) RealtimeQuotes(ctx context.Context) (core.Table, error) {
	query := url.Values{
		"pn":     {"1"},
		"pz":     {"1000000"},
		"po":     {"1"},
		"np":     {"1"},
		"fltt":   {"2"},
		"invt":   {"2"},
		"fid":    {"f3"},
		"fs":     {"m:0 t:6,m:0 t:80,m:1 t:2,m:1 t:23"},
		"fields": {strings.Join(quoteFields, ",")},
	}

	body, err := p.getJSON(ctx, p.pushURL+"/api/qt/clist/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("realtime quotes: %w", err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("realtime quotes: decode response failed: %w", err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("realtime quotes: %w", core.ErrNoData)
	}

	return projectList(resp.Data.Diff, quoteFields, quoteColumns), nil
}

// LatestQuotes 获取多只股票的最新价和涨跌情况
func (p *Provider) LatestQuotes(ctx context.Context, codes []string) (core.Table, error) {
	if len(codes) == 0 {
		return core.Table{}, core.ErrEmptySymbols
	}

	secids := make([]string, len(codes))
	for i, code := range codes {
		secids[i] = market.SecID(code)
	}

	query := url.Values{
		"fields": {strings.Join(latestQuoteFields, ",")},
		"fltt":   {"2"},
		"secids": {strings.Join(secids, ",")},
		"ut":     {utLatestQuote},
	}

	body, err := p.getJSON(ctx, p.pushURL+"/api/qt/ulist.np/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("latest quotes: %w", err)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("latest quotes: decode response failed: %w", err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("latest quotes: %w", core.ErrNoData)
	}

	return projectList(resp.Data.Diff, latestQuoteFields, latestQuoteColumns), nil
}

// BaseInfo 获取单只股票的基本面信息，结果为单行表
func (p *Provider) BaseInfo(ctx context.Context, code string) (core.Table, error) {
	if !p.IsSymbolSupported(code) {
		return core.Table{}, fmt.Errorf("base info %s: %w", code, core.ErrInvalidSymbol)
	}

	query := url.Values{
		"ut":     {utStockInfo},
		"invt":   {"2"},
		"fltt":   {"2"},
		"fields": {strings.Join(stockInfoFields, ",")},
		"secid":  {market.SecID(code)},
	}

	body, err := p.getJSON(ctx, p.pushURL+"/api/qt/stock/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("base info %s: %w", code, err)
	}

	var resp infoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("base info %s: decode response failed: %w", code, err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("base info %s: %w", code, core.ErrNoData)
	}

	table := core.NewTable(stockInfoColumns...)
	row := make([]string, len(stockInfoFields))
	for i, field := range stockInfoFields {
		row[i] = formatValue(resp.Data[field])
	}
	table.AppendRow(row)
	return table, nil
}

// projectList 将字段字典列表投影为按列名排好的表格
func projectList(diff []map[string]interface{}, fields, columns []string) core.Table {
	table := core.NewTable(columns...)
	for _, item := range diff {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = formatValue(item[field])
		}
		table.AppendRow(row)
	}
	return table
}
