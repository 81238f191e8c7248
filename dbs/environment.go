package dbs

import (
	"fmt"
	"strings"
)

// Environment DBS 部署环境
type Environment string

const (
	EnvProd Environment = "prod"
	EnvCert Environment = "cert"
	EnvQual Environment = "qual"
)

// Endpoints 环境对应的鉴权与 API 地址
type Endpoints struct {
	// TokenURL OAuth2 client-credentials 令牌地址
	TokenURL string
	// APIBaseURL 文件接口根地址
	APIBaseURL string
}

// environments 各环境的默认地址
//
// 这些地址按厂商的命名规则给出，并非厂商公布的正式地址。
// 接入前请以厂商提供的地址为准，通过 Config.TokenURL / Config.APIBaseURL
// （CLI 中为 DBS_TOKEN_URL / DBS_API_BASE_URL）覆盖。
var environments = map[Environment]Endpoints{
	EnvProd: {
		TokenURL:   "https://identity.dbs-api.com/oauth2/aus1dbsfiles/v1/token",
		APIBaseURL: "https://api.dbs-api.com",
	},
	EnvCert: {
		TokenURL:   "https://identity-cert.dbs-api.com/oauth2/aus1dbsfiles/v1/token",
		APIBaseURL: "https://api-cert.dbs-api.com",
	},
	EnvQual: {
		TokenURL:   "https://identity-qual.dbs-api.com/oauth2/aus1dbsfiles/v1/token",
		APIBaseURL: "https://api-qual.dbs-api.com",
	},
}

// ParseEnvironment 解析环境名称，大小写与首尾空白不敏感
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToLower(strings.TrimSpace(s)))
	if !env.Valid() {
		return "", fmt.Errorf("unknown environment %q (expected prod, cert or qual)", s)
	}
	return env, nil
}

// Valid 是否为已知环境
func (e Environment) Valid() bool {
	_, ok := environments[e]
	return ok
}

// Endpoints 返回环境的默认地址，见 environments 的说明
func (e Environment) Endpoints() Endpoints {
	return environments[e]
}

func (e Environment) String() string {
	return string(e)
}
