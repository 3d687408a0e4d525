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

// HistoryBill 获取指定股票的历史日级资金流向
func (p *Provider) HistoryBill(ctx context.Context, code string) (core.Table, error) {
	if !p.IsSymbolSupported(code) {
		return core.Table{}, fmt.Errorf("history bill %s: %w", code, core.ErrInvalidSymbol)
	}

	query := url.Values{
		"lmt":     {"100000"},
		"klt":     {"101"},
		"secid":   {market.SecID(code)},
		"fields1": {"f1,f2,f3,f7"},
		"fields2": {strings.Join(billFields, ",")},
	}

	body, err := p.getJSON(ctx, p.pushHisURL+"/api/qt/stock/fflow/daykline/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("history bill %s: %w", code, err)
	}

	var resp klineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("history bill %s: decode response failed: %w", code, err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("history bill %s: %w", code, core.ErrNoData)
	}

	return parseKlines(resp.Data.Klines, billColumns), nil
}

// TodayBill 获取指定股票当日的分钟级资金流向
func (p *Provider) TodayBill(ctx context.Context, code string) (core.Table, error) {
	if !p.IsSymbolSupported(code) {
		return core.Table{}, fmt.Errorf("today bill %s: %w", code, core.ErrInvalidSymbol)
	}

	query := url.Values{
		"lmt":     {"0"},
		"klt":     {"1"},
		"secid":   {market.SecID(code)},
		"fields1": {"f1,f2,f3,f7"},
		"fields2": {"f51,f52,f53,f54,f55,f56"},
		"ut":      {utTodayBill},
	}

	body, err := p.getJSON(ctx, p.pushURL+"/api/qt/stock/fflow/kline/get", query)
	if err != nil {
		return core.Table{}, fmt.Errorf("today bill %s: %w", code, err)
	}

	var resp klineResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.Table{}, fmt.Errorf("today bill %s: decode response failed: %w", code, err)
	}
	if resp.Data == nil {
		return core.Table{}, fmt.Errorf("today bill %s: %w", code, core.ErrNoData)
	}

	columns := []string{
		"time", "main_net_inflow", "small_net_inflow",
		"mid_net_inflow", "big_net_inflow", "huge_net_inflow",
	}
	table := parseKlines(resp.Data.Klines, columns)
	table.InsertColumn(0, "code", code)
	return table, nil
}
