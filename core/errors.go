package core

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind 错误类别，取值封闭
type ErrorKind int

const (
	// KindTransport 请求发送失败（网络、协议、客户端等）
	KindTransport ErrorKind = iota + 1
	// KindUnsupportedResponse 响应不符合预期（Content-Type、JSON 语法、结构、必填字段）
	KindUnsupportedResponse
	// KindOktaAuth 鉴权服务返回 OAuth 或厂商鉴权错误
	KindOktaAuth
	// KindAPI 业务接口返回结构化错误
	KindAPI
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindUnsupportedResponse:
		return "unsupported response"
	case KindOktaAuth:
		return "okta auth error"
	case KindAPI:
		return "api error"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// 传输错误和响应格式错误使用固定状态码
const internalErrorCode = http.StatusInternalServerError

// Error DBS 客户端错误
// 调用方通过 Kind 区分错误类别，而不是依赖具体类型
type Error struct {
	Kind    ErrorKind
	Message string
	// Code 传输与响应格式错误为 500，其余为响应状态码
	Code int

	Request  *http.Request
	Response *http.Response
	// Body 已读取的响应体（如有）
	Body []byte
	Err  error

	// 以下字段仅 KindAPI 使用
	APICode   string
	Timestamp string
	Path      string
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.Kind == KindAPI && e.APICode != "" {
		return fmt.Sprintf("%s: [%d] %s: %s", e.Kind, e.Code, e.APICode, e.Message)
	}
	return fmt.Sprintf("%s: [%d] %s", e.Kind, e.Code, e.Message)
}

// Unwrap 支持 errors.Is/As
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError 从错误链中取出 *Error
func AsError(err error) (*Error, bool) {
	return errors.AsType[*Error](err)
}

// IsKind 判断错误链中是否存在指定类别的 *Error
func IsKind(err error, kind ErrorKind) bool {
	if e, ok := AsError(err); ok {
		return e.Kind == kind
	}
	return false
}

// NewTransportError 创建传输错误
func NewTransportError(req *http.Request, msg string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: msg,
		Code:    internalErrorCode,
		Request: req,
		Err:     cause,
	}
}

// NewUnsupportedResponse 创建响应格式错误
func NewUnsupportedResponse(resp *http.Response, body []byte, msg string) *Error {
	return &Error{
		Kind:     KindUnsupportedResponse,
		Message:  msg,
		Code:     internalErrorCode,
		Request:  requestOf(resp),
		Response: resp,
		Body:     body,
	}
}

// NewOktaAuthError 创建鉴权错误
func NewOktaAuthError(resp *http.Response, body []byte, msg string) *Error {
	return &Error{
		Kind:     KindOktaAuth,
		Message:  msg,
		Code:     statusOf(resp),
		Request:  requestOf(resp),
		Response: resp,
		Body:     body,
	}
}

// NewAPIError 创建业务接口错误
func NewAPIError(resp *http.Response, body []byte, code, msg string) *Error {
	return &Error{
		Kind:     KindAPI,
		Message:  msg,
		Code:     statusOf(resp),
		Request:  requestOf(resp),
		Response: resp,
		Body:     body,
		APICode:  code,
	}
}

func requestOf(resp *http.Response) *http.Request {
	if resp == nil {
		return nil
	}
	return resp.Request
}

func statusOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
