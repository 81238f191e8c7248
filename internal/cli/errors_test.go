package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ShinyNito/FunkDBS/core"
)

func TestExitCode(t *testing.T) {
	status := func(code int) *http.Response { return &http.Response{StatusCode: code} }

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "cli error", err: usageError("bad", ""), want: ExitUsage},
		{name: "plain error", err: errors.New("boom"), want: ExitUsage},
		{name: "transport", err: core.NewTransportError(nil, "Network failure while sending request", errors.New("dial")), want: ExitNetwork},
		{name: "okta", err: core.NewOktaAuthError(status(401), nil, "invalid_client"), want: ExitAuth},
		{name: "unsupported", err: core.NewUnsupportedResponse(status(200), nil, "Cannot parse response body. Malformed JSON"), want: ExitUnsupported},
		{name: "not found", err: core.NewAPIError(status(404), nil, "FileNotFound", "gone"), want: ExitNotFound},
		{name: "forbidden", err: core.NewAPIError(status(403), nil, "Forbidden", "no"), want: ExitForbidden},
		{name: "rate limit", err: core.NewAPIError(status(429), nil, "TooMany", "slow down"), want: ExitRateLimit},
		{name: "conflict", err: core.NewAPIError(status(409), nil, "FileAlreadyExists", "exists"), want: ExitAPI},
		{name: "wrapped", err: fmt.Errorf("upload: %w", core.NewAPIError(status(404), nil, "FileNotFound", "gone")), want: ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, core.NewAPIError(&http.Response{StatusCode: 409}, nil, "FileAlreadyExists", "The specified a.txt already exists"))
	assert.Equal(t, "Error: The specified a.txt already exists (FileAlreadyExists, HTTP 409)\n", buf.String())

	buf.Reset()
	PrintError(&buf, usageError("client secret is required", "Set DBS_CLIENT_SECRET"))
	assert.Equal(t, "Error: client secret is required: Set DBS_CLIENT_SECRET\n", buf.String())
}
