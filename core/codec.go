package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
)

const (
	MsgMalformedJSON   = "Cannot parse response body. Malformed JSON"
	MsgObjectExpected  = "Cannot parse response body. JSON object expected"
	msgNotJSONContent  = "Provided response isn't JSON content type."
	msgMissingFieldFmt = "No required field %q in response body"
)

// HasContentType 响应的 Content-Type 是否包含 want，不区分大小写
func HasContentType(resp *http.Response, want string) bool {
	ct := resp.Header.Get("Content-Type")
	return ct != "" && strings.Contains(strings.ToLower(ct), want)
}

// MissingFieldMessage 缺少必填字段时 UnsupportedResponse 的错误信息
func MissingFieldMessage(name string) string {
	return fmt.Sprintf(msgMissingFieldFmt, name)
}

// DecodeToken 解析鉴权服务的令牌响应，读取并关闭响应体
func DecodeToken(resp *http.Response) (map[string]any, error) {
	obj, body, err := decodeObject(resp)
	if err != nil {
		return nil, err
	}

	if hasKeys(obj, "error", "error_description") {
		return nil, NewOktaAuthError(resp, body, joinFields(obj, "error", "error_description"))
	}
	if hasKeys(obj, "errorCode", "errorSummary") {
		return nil, NewOktaAuthError(resp, body, joinFields(obj, "errorCode", "errorSummary"))
	}
	if !hasKeys(obj, "access_token") {
		return nil, NewUnsupportedResponse(resp, body, MissingFieldMessage("access_token"))
	}
	return obj, nil
}

// DecodeAPI 解析业务接口响应，读取并关闭响应体
// 先识别 fault / error 两种错误结构，再检查必填字段
func DecodeAPI(resp *http.Response, required ...string) (map[string]any, error) {
	obj, body, err := decodeObject(resp)
	if err != nil {
		return nil, err
	}

	if hasKeys(obj, "faultcode", "faultstring") {
		code := stringField(obj, "faultcode")
		return nil, NewAPIError(resp, body, code, joinFields(obj, "faultcode", "faultstring"))
	}
	if hasKeys(obj, "error", "message") {
		apiErr := NewAPIError(resp, body, stringField(obj, "error"), stringField(obj, "message"))
		apiErr.Timestamp = stringField(obj, "timestamp")
		apiErr.Path = stringField(obj, "path")
		return nil, apiErr
	}
	for _, name := range required {
		if !hasKeys(obj, name) {
			return nil, NewUnsupportedResponse(resp, body, MissingFieldMessage(name))
		}
	}
	return obj, nil
}

func decodeObject(resp *http.Response) (map[string]any, []byte, error) {
	defer resp.Body.Close()

	if !HasContentType(resp, ContentTypeJSON) {
		msg := strings.TrimSpace(msgNotJSONContent + " " + resp.Header.Get("Content-Type"))
		return nil, nil, NewUnsupportedResponse(resp, nil, msg)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, NewTransportError(resp.Request, msgNetwork, fmt.Errorf("read response: %w", err))
	}

	value, err := parseJSON(body)
	if err != nil {
		unsupported := NewUnsupportedResponse(resp, body, MsgMalformedJSON)
		unsupported.Err = err
		return nil, body, unsupported
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, body, NewUnsupportedResponse(resp, body, MsgObjectExpected)
	}
	return obj, body, nil
}

func parseJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return value, nil
}

func hasKeys(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := obj[key]; !ok {
			return false
		}
	}
	return true
}

func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func joinFields(obj map[string]any, codeKey, textKey string) string {
	return stringField(obj, codeKey) + ": " + stringField(obj, textKey)
}
