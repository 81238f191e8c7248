package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ShinyNito/FunkDBS/core"
)

// Exit codes.
const (
	ExitOK          = 0 // Success
	ExitUsage       = 1 // Invalid arguments, flags or configuration
	ExitNotFound    = 2 // File not found
	ExitAuth        = 3 // Token request rejected
	ExitForbidden   = 4 // Dealer not allowed
	ExitRateLimit   = 5 // 429
	ExitNetwork     = 6 // Request could not be sent
	ExitAPI         = 7 // Service returned an error
	ExitUnsupported = 8 // Response could not be understood
)

// Error is a CLI error with an exit code and an optional hint.
type Error struct {
	Code    int
	Message string
	Hint    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Hint)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func usageError(msg, hint string) *Error {
	return &Error{Code: ExitUsage, Message: msg, Hint: hint}
}

// ExitCode maps err to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if e, ok := errors.AsType[*Error](err); ok {
		return e.Code
	}
	e, ok := core.AsError(err)
	if !ok {
		return ExitUsage
	}
	switch e.Kind {
	case core.KindTransport:
		return ExitNetwork
	case core.KindOktaAuth:
		return ExitAuth
	case core.KindUnsupportedResponse:
		return ExitUnsupported
	}
	switch e.Code {
	case http.StatusNotFound:
		return ExitNotFound
	case http.StatusUnauthorized:
		return ExitAuth
	case http.StatusForbidden:
		return ExitForbidden
	case http.StatusTooManyRequests:
		return ExitRateLimit
	}
	return ExitAPI
}

// PrintError writes err to w in a form suitable for a terminal.
func PrintError(w io.Writer, err error) {
	if e, ok := core.AsError(err); ok && e.Kind == core.KindAPI {
		fmt.Fprintf(w, "Error: %s (%s, HTTP %d)\n", e.Message, e.APICode, e.Code)
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
