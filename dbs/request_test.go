package dbs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuilder() *RequestBuilder {
	return NewRequestBuilder(Config{
		Environment:  EnvProd,
		DealerID:     "D 1",
		ClientID:     "id",
		ClientSecret: "secret",
		Scope:        "files read",
	})
}

func TestRequestBuilder_FilePaths(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantPath string
	}{
		{name: "plain", fileName: "report.csv", wantPath: "/dbs/dealer/D%201/files/report.csv"},
		{name: "space", fileName: "my report.csv", wantPath: "/dbs/dealer/D%201/files/my%20report.csv"},
		{name: "slash", fileName: "a/b.txt", wantPath: "/dbs/dealer/D%201/files/a%2Fb.txt"},
		{name: "reserved", fileName: "a+b&c=d?.txt", wantPath: "/dbs/dealer/D%201/files/a%2Bb%26c%3Dd%3F.txt"},
		{name: "unreserved kept", fileName: "a-b_c.d~e", wantPath: "/dbs/dealer/D%201/files/a-b_c.d~e"},
		{name: "非 ASCII", fileName: "报告.csv", wantPath: "/dbs/dealer/D%201/files/%E6%8A%A5%E5%91%8A.csv"},
	}

	b := testBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			download, err := b.DownloadRequest(context.Background(), "tok", tt.fileName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, download.URL.EscapedPath())
			assert.True(t, strings.HasPrefix(download.URL.String(), EnvProd.Endpoints().APIBaseURL+"/dbs/dealer/"))

			details, err := b.DetailsRequest(context.Background(), "tok", tt.fileName)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath+"/details", details.URL.EscapedPath())
		})
	}
}

func TestRequestBuilder_BusinessHeaders(t *testing.T) {
	b := testBuilder()
	ctx := context.Background()

	list, err := b.ListRequest(ctx, "tok")
	require.NoError(t, err)
	download, err := b.DownloadRequest(ctx, "tok", "a")
	require.NoError(t, err)
	details, err := b.DetailsRequest(ctx, "tok", "a")
	require.NoError(t, err)

	for _, req := range []*http.Request{list, download, details} {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
		assert.Equal(t, "application/json", req.Header.Get("Accept"))
	}

	upload, err := b.UploadRequest(ctx, "tok", UploadFile{Name: "a.txt", Content: []byte("x")}, false)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, upload.Method)
	assert.Equal(t, "Bearer tok", upload.Header.Get("Authorization"))
	assert.True(t, strings.HasPrefix(upload.Header.Get("Content-Type"), "multipart/form-data; boundary="))
}

func TestRequestBuilder_TokenRequest(t *testing.T) {
	req, err := testBuilder().TokenRequest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, EnvProd.Endpoints().TokenURL, req.URL.String())

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "id", user)
	assert.Equal(t, "secret", pass)

	body, _ := io.ReadAll(req.Body)
	assert.Equal(t, "grant_type=client_credentials&scope=files+read", string(body))
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
}

func TestRequestBuilder_TokenRequestIsPure(t *testing.T) {
	b := testBuilder()
	first, err := b.TokenRequest(context.Background())
	require.NoError(t, err)
	second, err := b.TokenRequest(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.Header, second.Header)
}
