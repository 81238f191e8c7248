package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerSingleflight(t *testing.T) {
	store := NewMemoryTokenStore("")
	var calls int32

	m, err := NewTokenManager(TokenManagerConfig{
		Store: store,
		Fetcher: func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			time.Sleep(30 * time.Millisecond)
			return "fresh", nil
		},
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			token, err := m.GetToken(context.Background())
			if err != nil {
				t.Errorf("get token: %v", err)
				return
			}
			if token != "fresh" {
				t.Errorf("unexpected token: %s", token)
			}
		})
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected one fetch call, got %d", got)
	}
}

func TestTokenManagerRefreshBypassesStore(t *testing.T) {
	store := NewMemoryTokenStore("stored")
	var calls int32

	m, err := NewTokenManager(TokenManagerConfig{
		Store: store,
		Fetcher: func(ctx context.Context) (string, error) {
			atomic.AddInt32(&calls, 1)
			return "fresh", nil
		},
	})
	require.NoError(t, err)

	token, err := m.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored", token)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))

	token, err = m.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	stored, ok := store.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "fresh", stored)
}

func TestTokenManagerFetchError(t *testing.T) {
	store := NewMemoryTokenStore("")
	want := errors.New("issuer down")

	m, err := NewTokenManager(TokenManagerConfig{
		Store: store,
		Fetcher: func(ctx context.Context) (string, error) {
			return "", want
		},
	})
	require.NoError(t, err)

	_, err = m.GetToken(context.Background())
	assert.Same(t, want, err)

	_, ok := store.Get(context.Background())
	assert.False(t, ok, "failed fetch must not store a token")
}

func TestTokenManagerEmptyToken(t *testing.T) {
	m, err := NewTokenManager(TokenManagerConfig{
		Store: NewMemoryTokenStore(""),
		Fetcher: func(ctx context.Context) (string, error) {
			return "", nil
		},
	})
	require.NoError(t, err)

	_, err = m.GetToken(context.Background())
	assert.EqualError(t, err, "empty token from fetcher")
}

func TestNewTokenManagerValidation(t *testing.T) {
	_, err := NewTokenManager(TokenManagerConfig{Fetcher: func(context.Context) (string, error) { return "", nil }})
	assert.EqualError(t, err, "token store is required")

	_, err = NewTokenManager(TokenManagerConfig{Store: NewMemoryTokenStore("")})
	assert.EqualError(t, err, "fetcher is required")
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore("")

	got, ok := store.Get(ctx)
	assert.False(t, ok)
	assert.Empty(t, got)

	require.NoError(t, store.Set(ctx, "abc"))
	got, ok = store.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, "abc", got)

	require.NoError(t, store.Delete(ctx))
	_, ok = store.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx), "deleting an absent token should succeed")
}
