package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	resp := newResponse(409, "application/json", "")

	apiErr := NewAPIError(resp, nil, "FileAlreadyExists", "The specified foobar.eame already exists")
	assert.Equal(t, "api error: [409] FileAlreadyExists: The specified foobar.eame already exists", apiErr.Error())

	unsupported := NewUnsupportedResponse(resp, nil, MsgMalformedJSON)
	assert.Equal(t, "unsupported response: [500] Cannot parse response body. Malformed JSON", unsupported.Error())
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	req, _ := http.NewRequest(http.MethodGet, "https://api.example.test", nil)
	err := NewTransportError(req, msgNetwork, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 500, err.Code)
	assert.Same(t, req, err.Request)
}

func TestIsKind(t *testing.T) {
	wrapped := fmt.Errorf("list files: %w", NewOktaAuthError(newResponse(401, "", ""), nil, "a: b"))

	assert.True(t, IsKind(wrapped, KindOktaAuth))
	assert.False(t, IsKind(wrapped, KindAPI))
	assert.False(t, IsKind(errors.New("plain"), KindTransport))

	e, ok := AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 401, e.Code)
}
