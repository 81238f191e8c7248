package core

import "context"

// TokenStore 当前 access token 的持有者
// 这是整个客户端唯一的共享可变状态；未设置时 Get 返回空字符串与 false。
type TokenStore interface {
	// Get 读取当前 token
	//
	// 参数:
	//   - ctx: 上下文
	//
	// 返回:
	//   - string: 当前 token，未设置时为空字符串
	//   - bool: 是否存在非空 token
	Get(ctx context.Context) (string, bool)

	// Set 写入新的 token
	//
	// 参数:
	//   - ctx: 上下文
	//   - token: 新 token，空字符串等价于清除
	//
	// 错误:
	//   - 底层存储写入失败
	Set(ctx context.Context, token string) error

	// Delete 清除当前 token，未设置时应静默成功
	Delete(ctx context.Context) error
}
