package core

import (
	"net/http"
	"net/url"
	"strings"
)

const redactedValue = "***"

var sensitiveQueryKeys = map[string]struct{}{
	"access_token":  {},
	"authorization": {},
	"client_id":     {},
	"client_secret": {},
	"secret":        {},
	"token":         {},
}

var sensitiveHeaders = []string{
	"Authorization",
	"Proxy-Authorization",
	"Cookie",
	"Set-Cookie",
}

// RedactURLQuery 脱敏 URL 查询参数中的敏感字段。
func RedactURLQuery(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	query := parsed.Query()
	for key, values := range query {
		if !isSensitiveQueryKey(key) {
			continue
		}
		for i := range values {
			values[i] = redactedValue
		}
		query[key] = values
	}

	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// RedactHeader 脱敏请求头，返回拷贝，原 header 不会被修改。
// Authorization 保留鉴权方案（Basic/Bearer），只隐藏凭据。
func RedactHeader(header http.Header) http.Header {
	if header == nil {
		return nil
	}

	out := header.Clone()
	for _, key := range sensitiveHeaders {
		values := out.Values(key)
		if len(values) == 0 {
			continue
		}
		redacted := make([]string, len(values))
		for i, value := range values {
			if scheme, _, ok := strings.Cut(value, " "); ok && key == "Authorization" {
				redacted[i] = scheme + " " + redactedValue
				continue
			}
			redacted[i] = redactedValue
		}
		out[http.CanonicalHeaderKey(key)] = redacted
	}
	return out
}

func isSensitiveQueryKey(key string) bool {
	_, exists := sensitiveQueryKeys[strings.ToLower(key)]
	return exists
}
