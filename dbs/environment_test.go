package dbs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironment(t *testing.T) {
	for _, in := range []string{"prod", "CERT", " qual "} {
		env, err := ParseEnvironment(in)
		require.NoError(t, err, in)
		assert.True(t, env.Valid())
	}

	_, err := ParseEnvironment("staging")
	assert.EqualError(t, err, `unknown environment "staging" (expected prod, cert or qual)`)
}

func TestConfig_SetEnvironment(t *testing.T) {
	cfg := Config{Environment: EnvProd}

	require.NoError(t, cfg.SetEnvironment("cert"))
	assert.Equal(t, EnvCert, cfg.Environment)

	assert.Error(t, cfg.SetEnvironment("dev"))
	assert.Equal(t, EnvCert, cfg.Environment, "rejected assignment must not change the environment")
}

func TestEnvironmentEndpoints(t *testing.T) {
	seen := map[string]bool{}
	for _, env := range []Environment{EnvProd, EnvCert, EnvQual} {
		endpoints := env.Endpoints()
		assert.NotEmpty(t, endpoints.TokenURL)
		assert.NotEmpty(t, endpoints.APIBaseURL)
		assert.False(t, seen[endpoints.APIBaseURL], "environments must not share an API base url")
		seen[endpoints.APIBaseURL] = true
	}
}

func TestConfig_EndpointOverrides(t *testing.T) {
	cfg := Config{Environment: EnvQual, APIBaseURL: "http://localhost:8080/"}
	endpoints := cfg.Endpoints()

	assert.Equal(t, "http://localhost:8080", endpoints.APIBaseURL)
	assert.Equal(t, EnvQual.Endpoints().TokenURL, endpoints.TokenURL)
}
