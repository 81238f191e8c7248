package core

import (
	"net/http"
	"net/url"
	"testing"
)

func TestRedactHeader(t *testing.T) {
	in := http.Header{}
	in.Set("Authorization", "Bearer token123")
	in.Set("Accept", "application/json")

	out := RedactHeader(in)

	if got := out.Get("Authorization"); got != "Bearer ***" {
		t.Fatalf("expected bearer credential to be redacted, got %q", got)
	}
	if got := out.Get("Accept"); got != "application/json" {
		t.Fatalf("expected accept to remain unchanged, got %q", got)
	}

	// 原始 header 不应被修改
	if in.Get("Authorization") != "Bearer token123" {
		t.Fatalf("expected input header unchanged")
	}
}

func TestRedactURLQuery(t *testing.T) {
	raw := "https://api.example.test/oauth2/v1/token?client_secret=abc&grant_type=client_credentials&access_token=tok"
	redacted := RedactURLQuery(raw)

	parsed, err := url.Parse(redacted)
	if err != nil {
		t.Fatalf("parse redacted url: %v", err)
	}

	if parsed.Query().Get("client_secret") != "***" {
		t.Fatalf("expected client_secret to be redacted")
	}
	if parsed.Query().Get("access_token") != "***" {
		t.Fatalf("expected access_token to be redacted")
	}
	if parsed.Query().Get("grant_type") != "client_credentials" {
		t.Fatalf("expected grant_type to remain unchanged")
	}
}
