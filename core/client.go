package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout 未指定 HTTPClient 时的默认超时
const DefaultTimeout = 30 * time.Second

// ClientConfig 客户端配置
type ClientConfig struct {
	// Transport 优先于 HTTPClient
	Transport  Transport
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client 与厂商无关的 HTTP 调用客户端
type Client struct {
	transport Transport
	logger    *slog.Logger
}

// NewClient 创建客户端，未设置的字段使用默认值
func NewClient(cfg ClientConfig) *Client {
	transport := cfg.Transport
	if transport == nil {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: DefaultTimeout}
		}
		transport = httpClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		transport: transport,
		logger:    logger,
	}
}

func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Send 发送一次请求
// 发送失败统一返回 KindTransport 错误；不解释响应状态码
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	c.logRequest(ctx, req)

	resp, err := send(c.transport, req)
	if err != nil {
		c.logger.DebugContext(ctx, "http request failed", slog.Any("error", err))
		return nil, err
	}

	c.logResponse(ctx, resp)
	return resp, nil
}

// BuildFunc 用给定 token 构建新的请求
// 重试时会再次调用，不能复用已发送过的请求
type BuildFunc func(ctx context.Context, token string) (*http.Request, error)

// DoAuthorized 带鉴权的调用流程
// 按需获取 token，构建并发送请求；若响应为 401，刷新 token 后重新构建请求并且只重发一次。
// 返回的响应体由调用方关闭
func (c *Client) DoAuthorized(ctx context.Context, tokens AccessTokenProvider, build BuildFunc) (*http.Response, error) {
	token, err := tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.sendBuilt(ctx, token, build)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	discard(resp)
	c.logger.InfoContext(ctx, "unauthorized response, retrying with a fresh token",
		slog.String("method", resp.Request.Method),
		slog.String("url", RedactURLQuery(resp.Request.URL.String())),
	)

	token, err = tokens.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.sendBuilt(ctx, token, build)
}

func (c *Client) sendBuilt(ctx context.Context, token string, build BuildFunc) (*http.Response, error) {
	req, err := build(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return c.Send(req)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *Client) logRequest(ctx context.Context, req *http.Request) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("url", RedactURLQuery(req.URL.String())),
		slog.Any("header", RedactHeader(req.Header)),
	}
	if req.ContentLength > 0 {
		attrs = append(attrs, slog.Int64("content_length", req.ContentLength))
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "http request", attrs...)
}

func (c *Client) logResponse(ctx context.Context, resp *http.Response) {
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "http response",
		slog.Int("status", resp.StatusCode),
		slog.String("content_type", resp.Header.Get("Content-Type")),
	)
}
