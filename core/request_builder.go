package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// RequestBuilder 请求构建器
// 只负责拼装请求，不做任何网络 I/O；每次 Build 都生成新的 *http.Request
type RequestBuilder struct {
	method string
	rawURL string
	query  url.Values
	header http.Header

	form url.Values

	// 文件上传相关
	uploadFile      []byte
	uploadFieldName string
	uploadFileName  string
}

// NewRequest 创建请求构建器
func NewRequest(method, rawURL string) *RequestBuilder {
	return &RequestBuilder{
		method: method,
		rawURL: rawURL,
		query:  make(url.Values),
		header: make(http.Header),
	}
}

// Query 添加单个查询参数
func (b *RequestBuilder) Query(key, value string) *RequestBuilder {
	b.query.Set(key, value)
	return b
}

// Header 设置请求头
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.header.Set(key, value)
	return b
}

// Accept 设置 Accept 请求头
func (b *RequestBuilder) Accept(mediaType string) *RequestBuilder {
	return b.Header("Accept", mediaType)
}

// BearerToken 设置 Bearer 鉴权头
func (b *RequestBuilder) BearerToken(token string) *RequestBuilder {
	return b.Header("Authorization", "Bearer "+token)
}

// BasicAuth 设置 Basic 鉴权头
func (b *RequestBuilder) BasicAuth(username, password string) *RequestBuilder {
	req := http.Request{Header: make(http.Header)}
	req.SetBasicAuth(username, password)
	return b.Header("Authorization", req.Header.Get("Authorization"))
}

// Form 设置 application/x-www-form-urlencoded 请求体
func (b *RequestBuilder) Form(form url.Values) *RequestBuilder {
	b.form = form
	return b
}

// UploadFile 设置文件上传参数
// fieldName: 表单字段名
// fileName: 文件名
// content: 文件内容
func (b *RequestBuilder) UploadFile(fieldName, fileName string, content []byte) *RequestBuilder {
	b.uploadFile = content
	b.uploadFieldName = fieldName
	b.uploadFileName = fileName
	return b
}

// Build 生成请求
func (b *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	reqURL, err := b.buildURL()
	if err != nil {
		return nil, err
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case b.uploadFieldName != "":
		data, ct, err := b.multipartBody()
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(data), ct
	case b.form != nil:
		body, contentType = strings.NewReader(b.form.Encode()), "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, b.method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header = b.header.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (b *RequestBuilder) buildURL() (string, error) {
	u, err := url.Parse(b.rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if len(b.query) > 0 {
		values := u.Query()
		for key, vs := range b.query {
			values[key] = vs
		}
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

func (b *RequestBuilder) multipartBody() ([]byte, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(b.uploadFieldName, b.uploadFileName)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(b.uploadFile); err != nil {
		return nil, "", fmt.Errorf("copy file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close writer: %w", err)
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}
