// Package credentials stores the OAuth client secret outside the config file.
package credentials

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const serviceName = "dbsfiles"

// DisableEnv turns the keyring off (CI, containers without a secret service).
const DisableEnv = "DBSFILES_NO_KEYRING"

// ErrNotFound is returned when no secret is stored for a client id.
var ErrNotFound = errors.New("client secret not found")

// ErrDisabled is returned by every operation when the keyring is disabled.
var ErrDisabled = errors.New("keyring disabled")

// Store handles client-secret storage in the system keychain.
type Store struct {
	enabled bool
}

// NewStore creates a credential store.
func NewStore() *Store {
	return &Store{enabled: os.Getenv(DisableEnv) == ""}
}

// Enabled reports whether the keyring is in use.
func (s *Store) Enabled() bool {
	return s.enabled
}

// key returns the keyring user for a client id and environment.
func key(env, clientID string) string {
	return fmt.Sprintf("%s::%s", env, clientID)
}

// Load retrieves the secret stored for clientID in env.
func (s *Store) Load(env, clientID string) (string, error) {
	if !s.enabled {
		return "", ErrDisabled
	}
	secret, err := keyring.Get(serviceName, key(env, clientID))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read keyring: %w", err)
	}
	return secret, nil
}

// Save stores the secret for clientID in env.
func (s *Store) Save(env, clientID, secret string) error {
	if !s.enabled {
		return ErrDisabled
	}
	if err := keyring.Set(serviceName, key(env, clientID), secret); err != nil {
		return fmt.Errorf("write keyring: %w", err)
	}
	return nil
}

// Delete removes the secret for clientID in env. Deleting a missing secret
// succeeds.
func (s *Store) Delete(env, clientID string) error {
	if !s.enabled {
		return ErrDisabled
	}
	err := keyring.Delete(serviceName, key(env, clientID))
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete keyring: %w", err)
	}
	return nil
}
