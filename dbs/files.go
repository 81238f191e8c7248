package dbs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ShinyNito/FunkDBS/core"
)

const msgNotBinaryContent = "Provided response isn't binary content type."

// Upload 上传文件
//
// 参数:
//   - ctx: 上下文
//   - src: 上传来源，FromPath 或 FromReader
//   - opts: 文件名与覆盖选项
//
// 返回:
//   - bool: 仅当服务端返回 204 No Content 时为 true
//   - error: 来源读取失败，或服务端返回的 *core.Error
//
// 示例:
//
//	ok, err := client.Upload(ctx, dbs.FromPath("/tmp/report.csv"), dbs.UploadOptions{Overwrite: true})
//	if core.IsKind(err, core.KindAPI) {
//	    // 例如 FileAlreadyExists
//	}
func (c *Client) Upload(ctx context.Context, src UploadSource, opts UploadOptions) (bool, error) {
	file, err := src.Resolve(opts.FileName)
	if err != nil {
		return false, err
	}

	c.cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "upload file request",
		slog.String("dealer_id", c.cfg.DealerID),
		slog.String("file_name", file.Name),
		slog.Int("size", len(file.Content)),
		slog.Bool("overwrite", opts.Overwrite),
	)

	resp, err := c.apiClient.DoAuthorized(ctx, c.tokenManager, func(ctx context.Context, token string) (*http.Request, error) {
		return c.requests.UploadRequest(ctx, token, file, opts.Overwrite)
	})
	if err != nil {
		return false, err
	}

	if resp.StatusCode == http.StatusNoContent {
		resp.Body.Close()
		return true, nil
	}
	if _, err := core.DecodeAPI(resp); err != nil {
		return false, err
	}
	return false, nil
}

// List 列出经销商的全部文件
// 返回响应中 files 字段的原始值，每个元素是一个文件描述对象
func (c *Client) List(ctx context.Context) ([]any, error) {
	c.cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "list files request", slog.String("dealer_id", c.cfg.DealerID))

	resp, err := c.apiClient.DoAuthorized(ctx, c.tokenManager, c.requests.ListRequest)
	if err != nil {
		return nil, err
	}

	envelope, err := core.DecodeAPI(resp, "files")
	if err != nil {
		return nil, err
	}

	files, ok := envelope["files"].([]any)
	if !ok {
		return nil, core.NewUnsupportedResponse(resp, nil, `Field "files" isn't a list`)
	}
	return files, nil
}

// Download 下载文件
// 成功时返回原始响应体，调用方负责关闭
//
// 错误:
//   - core.KindAPI: 例如文件不存在
//   - core.KindUnsupportedResponse: 响应既不是文件内容也不是可识别的错误
func (c *Client) Download(ctx context.Context, fileName string) (io.ReadCloser, error) {
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}

	c.cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "download file request",
		slog.String("dealer_id", c.cfg.DealerID),
		slog.String("file_name", fileName),
	)

	resp, err := c.apiClient.DoAuthorized(ctx, c.tokenManager, func(ctx context.Context, token string) (*http.Request, error) {
		return c.requests.DownloadRequest(ctx, token, fileName)
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK && core.HasContentType(resp, core.ContentTypeBinary) {
		return resp.Body, nil
	}

	if _, err := core.DecodeAPI(resp); err != nil {
		return nil, err
	}
	msg := strings.TrimSpace(msgNotBinaryContent + " " + resp.Header.Get("Content-Type"))
	return nil, core.NewUnsupportedResponse(resp, nil, msg)
}

// DownloadTo 下载文件并写入 w，返回写入的字节数
func (c *Client) DownloadTo(ctx context.Context, fileName string, w io.Writer) (int64, error) {
	body, err := c.Download(ctx, fileName)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return n, fmt.Errorf("copy file %s: %w", fileName, err)
	}
	return n, nil
}

// Details 查询文件元数据，返回完整的响应对象
func (c *Client) Details(ctx context.Context, fileName string) (map[string]any, error) {
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}

	c.cfg.Logger.LogAttrs(ctx, slog.LevelDebug, "file details request",
		slog.String("dealer_id", c.cfg.DealerID),
		slog.String("file_name", fileName),
	)

	resp, err := c.apiClient.DoAuthorized(ctx, c.tokenManager, func(ctx context.Context, token string) (*http.Request, error) {
		return c.requests.DetailsRequest(ctx, token, fileName)
	})
	if err != nil {
		return nil, err
	}
	return core.DecodeAPI(resp)
}
