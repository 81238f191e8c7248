package dbs

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate 校验 DBS 配置。
func (cfg *Config) Validate() error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if !cfg.Environment.Valid() {
		return fmt.Errorf("unknown environment %q (expected prod, cert or qual)", cfg.Environment)
	}
	if strings.TrimSpace(cfg.DealerID) == "" {
		return fmt.Errorf("dealer id is required")
	}
	if strings.TrimSpace(cfg.ClientID) == "" {
		return fmt.Errorf("client id is required")
	}
	if strings.TrimSpace(cfg.ClientSecret) == "" {
		return fmt.Errorf("client secret is required")
	}

	endpoints := cfg.Endpoints()
	if err := validateEndpoint("token url", endpoints.TokenURL); err != nil {
		return err
	}
	return validateEndpoint("api base url", endpoints.APIBaseURL)
}

// validateEndpoint 地址必须是带主机名的 http(s) 绝对地址
func validateEndpoint(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: absolute http(s) url required", name, raw)
	}
	return nil
}

func validateFileName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("file name is required")
	}
	return nil
}
