package core

import (
	"context"
	"sync"
)

// MemoryTokenStore 内存 token 存储
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore 创建内存 token 存储，token 可为空
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

// Get 获取 token
func (s *MemoryTokenStore) Get(ctx context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token, s.token != ""
}

// Set 设置 token
func (s *MemoryTokenStore) Set(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	return nil
}

// Delete 清除 token
func (s *MemoryTokenStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	return nil
}

var _ TokenStore = (*MemoryTokenStore)(nil)
