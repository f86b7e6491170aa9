// Package httpapi 通过 HTTP 暴露出奖服务，并提供对应的客户端
//
// 路由：
//
//	GET  /v1/reels        当前转轴配置
//	POST /v1/spins        请求一次出奖结果
//	PUT  /v1/reels/count  修改列数 {"count": n}
//	PUT  /v1/rows/count   修改行数 {"count": n}
package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/decker502/slots/pkg/backend"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes 请求/响应体上限
const maxBodyBytes = 1 << 20

// CountRequest 修改列数/行数的请求体
type CountRequest struct {
	Count int `json:"count"`
}

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// 错误码与哨兵错误的对应关系
const (
	codeInvalidReelCount = "invalid_reel_count"
	codeInvalidRowCount  = "invalid_row_count"
	codeTrackTooShort    = "track_too_short"
	codeBadRequest       = "bad_request"
	codeInternal         = "internal"
)

var codeErrors = map[string]error{
	codeInvalidReelCount: backend.ErrInvalidReelCount,
	codeInvalidRowCount:  backend.ErrInvalidRowCount,
	codeTrackTooShort:    backend.ErrTrackTooShort,
}

// APIError 服务端返回的错误
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http %d %s: %s", e.Status, e.Code, e.Message)
}

// Unwrap 把错误码映射回 backend 包的哨兵错误，便于 errors.Is
func (e *APIError) Unwrap() error {
	return codeErrors[e.Code]
}

// classify 把后端错误转换为状态码与错误码
func classify(err error) (int, string) {
	for code, sentinel := range codeErrors {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest, code
		}
	}
	return http.StatusInternalServerError, codeInternal
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: err.Error()})
}

func decode[T any](r io.Reader) (T, error) {
	var v T
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(&v); err != nil {
		return v, fmt.Errorf("decode body: %w", err)
	}
	return v, nil
}
