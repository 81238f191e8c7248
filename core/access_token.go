package core

import (
	"context"
)

// AccessTokenProvider AccessToken 提供者接口
type AccessTokenProvider interface {
	// GetToken 获取 AccessToken
	// 已持有 token 时直接返回，否则向鉴权服务申请（惰性获取）
	//
	// 参数:
	//   - ctx: 上下文
	//
	// 返回:
	//   - string: 可用于调用 DBS API 的 access_token
	//   - error: 鉴权服务返回的 *Error 或传输错误
	GetToken(ctx context.Context) (string, error)

	// RefreshToken 强制刷新 AccessToken
	// 忽略已持有的 token，用于收到 401 之后
	//
	// 参数:
	//   - ctx: 上下文
	//
	// 返回:
	//   - string: 新的 access_token
	//   - error: 鉴权服务返回的 *Error 或传输错误
	RefreshToken(ctx context.Context) (string, error)
}
