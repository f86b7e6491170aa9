package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/decker502/slots/pkg/backend"
)

// HTTPBackend 通过 HTTP 访问出奖服务，实现 backend.Backend
type HTTPBackend struct {
	baseURL    string
	httpClient *http.Client
}

var _ backend.Backend = (*HTTPBackend)(nil)

// NewHTTPBackend 创建 HTTP 客户端
//
// 参数:
//   - baseURL: 服务地址（如 "http://127.0.0.1:8080"）
//   - httpClient: 可为 nil，默认 10 秒超时
func NewHTTPBackend(baseURL string, httpClient *http.Client) *HTTPBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *HTTPBackend) GetReelConfiguration(ctx context.Context) (*backend.ReelConfiguration, error) {
	var rc backend.ReelConfiguration
	if err := c.do(ctx, http.MethodGet, "/v1/reels", nil, &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

func (c *HTTPBackend) RequestSpinOutcome(ctx context.Context) (*backend.SpinOutcome, error) {
	var outcome backend.SpinOutcome
	if err := c.do(ctx, http.MethodPost, "/v1/spins", nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func (c *HTTPBackend) SetReelCount(ctx context.Context, n int) error {
	return c.do(ctx, http.MethodPut, "/v1/reels/count", CountRequest{Count: n}, nil)
}

func (c *HTTPBackend) SetRowCount(ctx context.Context, n int) error {
	return c.do(ctx, http.MethodPut, "/v1/rows/count", CountRequest{Count: n}, nil)
}

// do 发送请求；in 非 nil 时编码为请求体，out 非 nil 时解码响应体
func (c *HTTPBackend) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if er, err := decode[ErrorResponse](resp.Body); err == nil {
			apiErr.Code = er.Code
			apiErr.Message = er.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
