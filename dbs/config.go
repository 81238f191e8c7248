package dbs

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ShinyNito/FunkDBS/core"
)

// Config DBS 客户端配置
type Config struct {
	// Environment 部署环境（必填）：prod、cert、qual
	Environment Environment
	// DealerID 经销商标识（必填），决定可见的文件范围
	DealerID string
	// ClientID OAuth2 客户端 ID（必填）
	ClientID string
	// ClientSecret OAuth2 客户端密钥（必填）
	ClientSecret string
	// Scope 申请的鉴权范围
	Scope string

	// AccessToken 初始 access token（可选），为空时首次调用再申请
	AccessToken string
	// TokenStore 当前 token 的存储（可选，默认内存存储）
	TokenStore core.TokenStore

	// TokenURL、APIBaseURL 覆盖环境默认地址（可选）
	// 默认地址未经厂商确认，生产接入时应显式设置
	TokenURL   string
	APIBaseURL string

	// Transport 自定义传输层（可选，优先于 HTTPClient）
	Transport core.Transport
	// HTTPClient 自定义 HTTP 客户端（可选）
	HTTPClient *http.Client
	// Logger 日志记录器（可选，默认使用 slog.Default()）
	Logger *slog.Logger
}

// SetEnvironment 设置部署环境，未知环境直接拒绝且不修改配置
func (cfg *Config) SetEnvironment(env string) error {
	parsed, err := ParseEnvironment(env)
	if err != nil {
		return err
	}
	cfg.Environment = parsed
	return nil
}

// Endpoints 返回生效的地址：覆盖值优先，其次为环境默认值
func (cfg Config) Endpoints() Endpoints {
	endpoints := cfg.Environment.Endpoints()
	if cfg.TokenURL != "" {
		endpoints.TokenURL = cfg.TokenURL
	}
	if cfg.APIBaseURL != "" {
		endpoints.APIBaseURL = cfg.APIBaseURL
	}
	endpoints.APIBaseURL = strings.TrimSuffix(endpoints.APIBaseURL, "/")
	return endpoints
}

func normalizeConfig(cfg Config) Config {
	cfg.DealerID = strings.TrimSpace(cfg.DealerID)
	cfg.TokenURL = strings.TrimSpace(cfg.TokenURL)
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.TokenStore == nil {
		cfg.TokenStore = core.NewMemoryTokenStore(cfg.AccessToken)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
