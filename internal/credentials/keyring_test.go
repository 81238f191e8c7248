package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	t.Setenv(DisableEnv, "")
	store := NewStore()
	require.True(t, store.Enabled())

	_, err := store.Load("prod", "client-a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Save("prod", "client-a", "s3cret"))
	secret, err := store.Load("prod", "client-a")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)

	_, err = store.Load("cert", "client-a")
	assert.ErrorIs(t, err, ErrNotFound, "secrets are scoped per environment")

	require.NoError(t, store.Delete("prod", "client-a"))
	require.NoError(t, store.Delete("prod", "client-a"))
	_, err = store.Load("prod", "client-a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Disabled(t *testing.T) {
	t.Setenv(DisableEnv, "1")
	store := NewStore()

	assert.False(t, store.Enabled())
	_, err := store.Load("prod", "x")
	assert.ErrorIs(t, err, ErrDisabled)
	assert.ErrorIs(t, store.Save("prod", "x", "y"), ErrDisabled)
	assert.ErrorIs(t, store.Delete("prod", "x"), ErrDisabled)
}
