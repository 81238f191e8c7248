package dbs

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ShinyNito/FunkDBS/core"
)

const (
	uploadFieldName = "file"
	grantType       = "client_credentials"
)

// RequestBuilder 构建 DBS 各接口的 HTTP 请求
// 纯函数：只依赖构造参数与传入的 token，不做网络 I/O
type RequestBuilder struct {
	endpoints    Endpoints
	dealerID     string
	clientID     string
	clientSecret string
	scope        string
}

// NewRequestBuilder 根据配置创建请求构建器
func NewRequestBuilder(cfg Config) *RequestBuilder {
	return &RequestBuilder{
		endpoints:    cfg.Endpoints(),
		dealerID:     cfg.DealerID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        cfg.Scope,
	}
}

// TokenRequest 申请 access token 的请求
func (b *RequestBuilder) TokenRequest(ctx context.Context) (*http.Request, error) {
	return core.NewRequest(http.MethodPost, b.endpoints.TokenURL).
		BasicAuth(b.clientID, b.clientSecret).
		Accept(core.ContentTypeJSON).
		Form(url.Values{
			"grant_type": {grantType},
			"scope":      {b.scope},
		}).
		Build(ctx)
}

// UploadRequest 上传文件的 multipart 请求
func (b *RequestBuilder) UploadRequest(ctx context.Context, token string, file UploadFile, overwrite bool) (*http.Request, error) {
	builder := core.NewRequest(http.MethodPost, b.filesURL()).
		BearerToken(token).
		UploadFile(uploadFieldName, file.Name, file.Content)
	if overwrite {
		builder.Query("overwrite", "true")
	}
	return builder.Build(ctx)
}

// ListRequest 列出经销商文件的请求
func (b *RequestBuilder) ListRequest(ctx context.Context, token string) (*http.Request, error) {
	return b.get(ctx, token, b.filesURL())
}

// DownloadRequest 下载文件的请求
func (b *RequestBuilder) DownloadRequest(ctx context.Context, token, fileName string) (*http.Request, error) {
	return b.get(ctx, token, b.fileURL(fileName))
}

// DetailsRequest 查询文件元数据的请求
func (b *RequestBuilder) DetailsRequest(ctx context.Context, token, fileName string) (*http.Request, error) {
	return b.get(ctx, token, b.fileURL(fileName)+"/details")
}

func (b *RequestBuilder) get(ctx context.Context, token, rawURL string) (*http.Request, error) {
	return core.NewRequest(http.MethodGet, rawURL).
		BearerToken(token).
		Accept(core.ContentTypeJSON).
		Build(ctx)
}

func (b *RequestBuilder) filesURL() string {
	return b.endpoints.APIBaseURL + "/dbs/dealer/" + escapePathSegment(b.dealerID) + "/files"
}

func (b *RequestBuilder) fileURL(fileName string) string {
	return b.filesURL() + "/" + escapePathSegment(fileName)
}

// escapePathSegment 对 A-Z a-z 0-9 - _ . ~ 以外的字符做百分号编码
func escapePathSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
