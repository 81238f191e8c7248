package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type TokenFetcher func(ctx context.Context) (string, error)

type TokenManagerConfig struct {
	Store   TokenStore
	Fetcher TokenFetcher
	Logger  *slog.Logger
}

type tokenCall struct {
	done  chan struct{}
	token string
	err   error
}

// TokenManager 串行化 token 申请
// 申请进行中时，其他需要 token 的调用方等待同一次申请的结果，不会重复发起
type TokenManager struct {
	store   TokenStore
	fetcher TokenFetcher
	logger  *slog.Logger

	mu       sync.Mutex
	inflight *tokenCall
}

func NewTokenManager(cfg TokenManagerConfig) (*TokenManager, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("token store is required")
	}
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenManager{
		store:   cfg.Store,
		fetcher: cfg.Fetcher,
		logger:  logger,
	}, nil
}

func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	if token, ok := m.store.Get(ctx); ok {
		return token, nil
	}
	return m.do(ctx, false)
}

func (m *TokenManager) RefreshToken(ctx context.Context) (string, error) {
	return m.do(ctx, true)
}

func (m *TokenManager) do(ctx context.Context, force bool) (string, error) {
	m.mu.Lock()
	if !force {
		if token, ok := m.store.Get(ctx); ok {
			m.mu.Unlock()
			return token, nil
		}
	}

	if m.inflight != nil {
		call := m.inflight
		m.mu.Unlock()
		return waitTokenCall(ctx, call)
	}

	call := &tokenCall{done: make(chan struct{})}
	m.inflight = call
	m.mu.Unlock()

	token, err := m.fetchAndStore(ctx, force)
	call.token = token
	call.err = err
	close(call.done)

	m.mu.Lock()
	if m.inflight == call {
		m.inflight = nil
	}
	m.mu.Unlock()

	return token, err
}

func (m *TokenManager) fetchAndStore(ctx context.Context, force bool) (string, error) {
	if force {
		m.logger.InfoContext(ctx, "refreshing access token")
	} else {
		m.logger.DebugContext(ctx, "acquiring access token")
	}

	token, err := m.fetcher(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("empty token from fetcher")
	}

	if err := m.store.Set(ctx, token); err != nil {
		return "", fmt.Errorf("store access token: %w", err)
	}
	return token, nil
}

func waitTokenCall(ctx context.Context, call *tokenCall) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-call.done:
		return call.token, call.err
	}
}

var _ AccessTokenProvider = (*TokenManager)(nil)
