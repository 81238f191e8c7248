package dbs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ShinyNito/FunkDBS/core"
)

// Client DBS 文件服务客户端
//
// 同一个 Client 可被多个 goroutine 共享：token 的读取与刷新由
// core.TokenManager 串行化，并发的 401 刷新只会触发一次令牌申请。
type Client struct {
	cfg          Config
	apiClient    *core.Client
	requests     *RequestBuilder
	tokenManager *core.TokenManager
}

// New 创建 DBS 客户端
// 不会发起任何网络请求，token 在第一次业务调用时才申请
func New(cfg Config) (*Client, error) {
	cfg = normalizeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dbs config: %w", err)
	}

	c := &Client{
		cfg: cfg,
		apiClient: core.NewClient(core.ClientConfig{
			Transport:  cfg.Transport,
			HTTPClient: cfg.HTTPClient,
			Logger:     cfg.Logger,
		}),
		requests: NewRequestBuilder(cfg),
	}

	tokenManager, err := core.NewTokenManager(core.TokenManagerConfig{
		Store:   cfg.TokenStore,
		Fetcher: c.FetchAccessToken,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	c.tokenManager = tokenManager

	return c, nil
}

// AccessTokenProvider 获取 token 管理器
func (c *Client) AccessTokenProvider() core.AccessTokenProvider {
	return c.tokenManager
}

// AccessToken 当前持有的 access token，未持有时返回空字符串
func (c *Client) AccessToken(ctx context.Context) string {
	token, _ := c.cfg.TokenStore.Get(ctx)
	return token
}

// SetAccessToken 替换当前 access token，传入空字符串表示清除
func (c *Client) SetAccessToken(ctx context.Context, token string) error {
	if token == "" {
		return c.cfg.TokenStore.Delete(ctx)
	}
	return c.cfg.TokenStore.Set(ctx, token)
}

// FetchAccessToken 使用 client credentials 向鉴权服务申请新的 access token
// 不读取也不写入当前 token；鉴权服务的错误原样返回
//
// 错误:
//   - core.KindOktaAuth: 鉴权服务返回 OAuth / Okta 错误
//   - core.KindUnsupportedResponse: 响应不是 JSON 对象或缺少 access_token
//   - core.KindTransport: 请求发送失败
func (c *Client) FetchAccessToken(ctx context.Context) (string, error) {
	req, err := c.requests.TokenRequest(ctx)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}

	resp, err := c.apiClient.Send(req)
	if err != nil {
		return "", err
	}

	envelope, err := core.DecodeToken(resp)
	if err != nil {
		return "", err
	}

	token, ok := envelope["access_token"].(string)
	if !ok || token == "" {
		return "", core.NewUnsupportedResponse(resp, nil, core.MissingFieldMessage("access_token"))
	}

	c.apiClient.Logger().DebugContext(ctx, "access token issued",
		slog.String("dealer_id", c.cfg.DealerID),
		slog.Any("expires_in", envelope["expires_in"]),
	)
	return token, nil
}
