package eastmoney

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"stockfetch/pkg/core"
)

// getJSON 发起 GET 请求并返回响应体
func (p *Provider) getJSON(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	return p.do(req)
}

// postJSON 发起 JSON 请求体的 POST 请求并返回响应体
func (p *Provider) postJSON(ctx context.Context, rawURL string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Content-Type", "application/json;charset=utf-8")
	req.Header.Set("Cache-Control", "public")

	return p.do(req)
}

func (p *Provider) do(req *http.Request) ([]byte, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &core.StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}

	// 部分老接口以 GBK 返回，统一转为 UTF-8
	if isGBKCharset(resp.Header.Get("Content-Type")) {
		return gbkToUtf8(body), nil
	}
	return body, nil
}

// isGBKCharset 判断 Content-Type 是否声明了 GBK 系编码
func isGBKCharset(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "gbk") ||
		strings.Contains(ct, "gb2312") ||
		strings.Contains(ct, "gb18030")
}

// gbkToUtf8 将 GBK 编码转换为 UTF-8
// 转换失败时原样返回
func gbkToUtf8(data []byte) []byte {
	reader := transform.NewReader(bytes.NewReader(data), simplifiedchinese.GB18030.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return data
	}
	return decoded
}

// formatValue 将 JSON 解码出的任意值转为字符串表示
// 行情接口对停牌等空值返回 "-"，保持原样
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
