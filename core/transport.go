package core

import (
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
)

// Transport 可插拔的 HTTP 传输层
// *http.Client 直接满足该接口，测试或自定义实现可以替换它
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// TransportFunc 将函数适配为 Transport
type TransportFunc func(req *http.Request) (*http.Response, error)

// Do 实现 Transport 接口
func (f TransportFunc) Do(req *http.Request) (*http.Response, error) {
	return f(req)
}

const (
	msgProtocol   = "Protocol violation while sending request"
	msgNetwork    = "Network failure while sending request"
	msgClient     = "HTTP client failed to send request"
	msgUnexpected = "Unexpected failure while sending request"
)

// ClassifyTransportError 将发送失败归入四类固定描述：协议、网络、客户端、未知
//
// *url.Error 本身实现 net.Error，按其内部原因归类
func ClassifyTransportError(err error) string {
	var (
		protoErr  *http.ProtocolError
		recordErr tls.RecordHeaderError
		urlErr    *url.Error
	)
	switch {
	case errors.As(err, &protoErr),
		errors.As(err, &recordErr),
		errors.Is(err, http.ErrSchemeMismatch):
		return msgProtocol
	case errors.As(err, &urlErr):
		if urlErr.Timeout() || isNetworkError(urlErr.Err) {
			return msgNetwork
		}
		return msgClient
	case isNetworkError(err):
		return msgNetwork
	default:
		return msgUnexpected
	}
}

// isNetworkError 连接、DNS、超时等网络层失败
func isNetworkError(err error) bool {
	var (
		opErr  *net.OpError
		dnsErr *net.DNSError
		netErr net.Error
	)
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, os.ErrDeadlineExceeded):
		return true
	case errors.As(err, &netErr):
		var nested *url.Error
		return !errors.As(err, &nested)
	}
	return false
}

// send 通过 Transport 发送请求，所有失败统一为 KindTransport 错误
func send(transport Transport, req *http.Request) (*http.Response, error) {
	resp, err := transport.Do(req)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, NewTransportError(req, ClassifyTransportError(err), err)
	}
	if resp == nil {
		return nil, NewTransportError(req, msgUnexpected, errors.New("transport returned no response"))
	}
	if resp.Request == nil {
		resp.Request = req
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	if resp.Body == nil {
		resp.Body = http.NoBody
	}
	return resp, nil
}
