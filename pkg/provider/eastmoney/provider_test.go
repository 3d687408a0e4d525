package eastmoney

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfetch/pkg/core"
	"stockfetch/pkg/provider"
)

// newTestProvider 创建指向 mock 服务的提供商
func newTestProvider(handler http.Handler) (*Provider, *httptest.Server) {
	server := httptest.NewServer(handler)
	p := NewProvider()
	p.pushURL = server.URL
	p.pushHisURL = server.URL
	p.emh5URL = server.URL
	return p, server
}

func TestProvider_QuoteHistory(t *testing.T) {
	var gotSecID string
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qt/stock/kline/get", r.URL.Path)
		gotSecID = r.URL.Query().Get("secid")
		w.Write([]byte(`{"data":{"code":"600000","name":"浦发银行","klines":[
			"2024-01-02,7.00,7.10,7.15,6.98,100000,70000000,2.4,1.43,0.10,0.21",
			"2024-01-03,7.10,7.05,7.12,7.01,90000,63000000,1.5,-0.70,-0.05,0.19"]}}`))
	}))
	defer server.Close()

	table, err := p.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())

	require.NoError(t, err)
	assert.Equal(t, "1.600000", gotSecID, "请求应携带市场限定的复合标识")
	assert.Equal(t, 2, table.Len())
	require.GreaterOrEqual(t, len(table.Columns), 4)
	assert.Equal(t, "name", table.Columns[0])
	assert.Equal(t, "code", table.Columns[1])
	assert.Equal(t, "date", table.Columns[2])
	assert.Equal(t, []string{"浦发银行", "600000", "2024-01-02", "7.00", "7.10", "7.15", "6.98",
		"100000", "70000000", "2.4", "1.43", "0.10", "0.21"}, table.Rows[0])
}

func TestProvider_QuoteHistory_NoData(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	_, err := p.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestProvider_QuoteHistory_InvalidSymbol(t *testing.T) {
	called := false
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	_, err := p.QuoteHistory(context.Background(), "abc", provider.DefaultKlineParams())
	assert.ErrorIs(t, err, core.ErrInvalidSymbol)
	assert.False(t, called, "非法代码不应发起请求")
}

func TestProvider_QuoteHistory_HTTPStatusError(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := p.QuoteHistory(context.Background(), "600000", provider.DefaultKlineParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status error: 502")

	var statusErr *core.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestProvider_RealtimeQuotes(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qt/clist/get", r.URL.Path)
		w.Write([]byte(`{"data":{"diff":[
			{"f12":"600000","f14":"浦发银行","f2":7.10,"f3":1.43,"f4":0.10,"f5":100000,
			 "f6":70000000,"f7":2.4,"f8":0.21,"f9":5.1,"f10":0.9,"f15":7.15,"f16":6.98,
			 "f17":7.00,"f18":7.00,"f23":0.5},
			{"f12":"000001","f14":"平安银行","f2":"-","f3":"-","f4":"-","f5":0,
			 "f6":0,"f7":"-","f8":"-","f9":"-","f10":"-","f15":"-","f16":"-",
			 "f17":"-","f18":10.0,"f23":0.8}]}}`))
	}))
	defer server.Close()

	table, err := p.RealtimeQuotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, quoteColumns, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "600000", table.Rows[0][0])
	assert.Equal(t, "7.1", table.Rows[0][2])
	assert.Equal(t, "-", table.Rows[1][2], "停牌空值保持原样")
}

func TestProvider_LatestQuotes(t *testing.T) {
	var gotSecIDs string
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qt/ulist.np/get", r.URL.Path)
		gotSecIDs = r.URL.Query().Get("secids")
		w.Write([]byte(`{"data":{"diff":[
			{"f12":"600000","f14":"浦发银行","f2":7.10,"f3":1.43},
			{"f12":"300503","f14":"昊志机电","f2":20.5,"f3":-0.5}]}}`))
	}))
	defer server.Close()

	table, err := p.LatestQuotes(context.Background(), []string{"600000", "300503"})

	require.NoError(t, err)
	assert.Equal(t, "1.600000,0.300503", gotSecIDs)
	assert.Equal(t, latestQuoteColumns, table.Columns)
	assert.Equal(t, 2, table.Len())
}

func TestProvider_LatestQuotes_EmptySymbols(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	_, err := p.LatestQuotes(context.Background(), nil)
	assert.ErrorIs(t, err, core.ErrEmptySymbols)
}

func TestProvider_BaseInfo(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qt/stock/get", r.URL.Path)
		w.Write([]byte(`{"data":{"f57":"600000","f58":"浦发银行","f162":5.1,"f167":0.5,
			"f127":"银行","f116":200000000000,"f117":190000000000,"f173":10.2,
			"f183":50000000000,"f105":15000000000}}`))
	}))
	defer server.Close()

	table, err := p.BaseInfo(context.Background(), "600000")

	require.NoError(t, err)
	assert.Equal(t, stockInfoColumns, table.Columns)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "600000", table.Rows[0][0])
	assert.Equal(t, "银行", table.Rows[0][4])
	assert.Equal(t, "200000000000", table.Rows[0][5], "大数不应使用科学计数法")
}

func TestProvider_TodayBill(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/qt/stock/fflow/kline/get", r.URL.Path)
		w.Write([]byte(`{"data":{"klines":[
			"2024-01-02 09:31,1000,200,-100,500,400",
			"2024-01-02 09:32,1100,210,-90,520,410"]}}`))
	}))
	defer server.Close()

	table, err := p.TodayBill(context.Background(), "600000")

	require.NoError(t, err)
	assert.Equal(t, "code", table.Columns[0])
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "600000", table.Rows[0][0], "整表补上股票代码列")
	assert.Equal(t, "2024-01-02 09:31", table.Rows[0][1])
}

func TestProvider_HistoryBill_NoData(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	_, err := p.HistoryBill(context.Background(), "600000")
	assert.ErrorIs(t, err, core.ErrNoData)
}

func TestProvider_Top10Holders(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/GuBenGuDong/GetFirstRequest2Data":
			w.Write([]byte(`{"Result":{"SDLTGDBGQ":{"ShiDaLiuTongGuDongBaoGaoQiList":[
				{"BaoGaoQi":"2024-03-31"},{"BaoGaoQi":"2023-12-31"},{"BaoGaoQi":"2023-09-30"}]}}}`))
		case "/api/GuBenGuDong/GetShiDaLiuTongGuDong":
			w.Write([]byte(`{"Result":{"ShiDaLiuTongGuDongList":[
				{"GuDongDaiMa":"70001","GuDongMingCheng":"某集团","ChiGuShu":"1.2亿",
				 "ChiGuBiLi":"4.1%","ZengJian":"不变","BianDongBiLi":"--"}]}}`))
		default:
			t.Errorf("意外的请求路径: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	table, err := p.Top10Holders(context.Background(), "600000", 2)

	require.NoError(t, err)
	assert.Equal(t, holderColumns, table.Columns)
	require.Equal(t, 2, table.Len(), "两个报告期各一条")
	assert.Equal(t, "600000", table.Rows[0][0])
	assert.Equal(t, "2024-03-31", table.Rows[0][1])
	assert.Equal(t, "2023-12-31", table.Rows[1][1])
	assert.Equal(t, "某集团", table.Rows[0][3])
}

func TestProvider_Top10Holders_NoDates(t *testing.T) {
	p, server := newTestProvider(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Result":{"SDLTGDBGQ":{"ShiDaLiuTongGuDongBaoGaoQiList":[]}}}`))
	}))
	defer server.Close()

	table, err := p.Top10Holders(context.Background(), "600000", 4)
	require.NoError(t, err)
	assert.True(t, table.Empty(), "无公开日期时返回空表")
	assert.Equal(t, holderColumns, table.Columns)
}

func TestProvider_IsSymbolSupported(t *testing.T) {
	p := NewProvider()
	assert.True(t, p.IsSymbolSupported("600000"))
	assert.True(t, p.IsSymbolSupported("830799"))
	assert.False(t, p.IsSymbolSupported("sh600000"))
	assert.False(t, p.IsSymbolSupported(""))
}
