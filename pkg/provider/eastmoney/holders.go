package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"

	"stockfetch/pkg/core"
	"stockfetch/pkg/market"
)

// holderDatesResponse 股东信息公开日期接口响应
type holderDatesResponse struct {
	Result struct {
		SDLTGDBGQ struct {
			List []struct {
				BaoGaoQi string `json:"BaoGaoQi"`
			} `json:"ShiDaLiuTongGuDongBaoGaoQiList"`
		} `json:"SDLTGDBGQ"`
	} `json:"Result"`
}

// holderListResponse 前十大流通股东接口响应
type holderListResponse struct {
	Result struct {
		List []struct {
			GuDongDaiMa     string `json:"GuDongDaiMa"`
			GuDongMingCheng string `json:"GuDongMingCheng"`
			ChiGuShu        string `json:"ChiGuShu"`
			ChiGuBiLi       string `json:"ChiGuBiLi"`
			ZengJian        string `json:"ZengJian"`
			BianDongBiLi    string `json:"BianDongBiLi"`
		} `json:"ShiDaLiuTongGuDongList"`
	} `json:"Result"`
}

// Top10Holders 获取最近 top 期的前十大流通股东信息
//
// 先取公开日期列表，再按报告期逐期拉取股东名单，合并为一张表。
// 没有任何公开日期时返回只有列名的空表。
func (p *Provider) Top10Holders(ctx context.Context, code string, top int) (core.Table, error) {
	if !p.IsSymbolSupported(code) {
		return core.Table{}, fmt.Errorf("top10 holders %s: %w", code, core.ErrInvalidSymbol)
	}
	if top <= 0 {
		top = 4
	}

	fc := market.FC(code)
	dates, err := p.holderReportDates(ctx, fc, top)
	if err != nil {
		return core.Table{}, fmt.Errorf("top10 holders %s: %w", code, err)
	}

	table := core.NewTable(holderColumns...)
	for _, date := range dates {
		body, err := p.postJSON(ctx, p.emh5URL+"/api/GuBenGuDong/GetShiDaLiuTongGuDong",
			map[string]string{"fc": fc, "BaoGaoQi": date})
		if err != nil {
			return core.Table{}, fmt.Errorf("top10 holders %s: %w", code, err)
		}

		var resp holderListResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return core.Table{}, fmt.Errorf("top10 holders %s: decode response failed: %w", code, err)
		}

		for _, holder := range resp.Result.List {
			table.AppendRow([]string{
				code, date,
				holder.GuDongDaiMa, holder.GuDongMingCheng,
				holder.ChiGuShu, holder.ChiGuBiLi,
				holder.ZengJian, holder.BianDongBiLi,
			})
		}
	}

	return table, nil
}

// holderReportDates 获取股东信息的公开日期列表，最多 top 期
func (p *Provider) holderReportDates(ctx context.Context, fc string, top int) ([]string, error) {
	body, err := p.postJSON(ctx, p.emh5URL+"/api/GuBenGuDong/GetFirstRequest2Data",
		map[string]string{"fc": fc})
	if err != nil {
		return nil, err
	}

	var resp holderDatesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode report dates failed: %w", err)
	}

	items := resp.Result.SDLTGDBGQ.List
	dates := make([]string, 0, top)
	for _, item := range items {
		if len(dates) == top {
			break
		}
		if item.BaoGaoQi == "" {
			continue
		}
		dates = append(dates, item.BaoGaoQi)
	}
	return dates, nil
}
