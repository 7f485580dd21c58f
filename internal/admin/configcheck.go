// AngelaMos | 2026
// configcheck.go

package admin

import (
	"github.com/andgroupco/andoffer/internal/config"
)

type ServiceCheck struct {
	Configured bool   `json:"configured"`
	Driver     string `json:"driver,omitempty"`
	BaseURL    string `json:"base_url,omitempty"`
}

type ConfigCheckResponse struct {
	Environment string       `json:"environment"`
	Version     string       `json:"version"`
	PublicURL   string       `json:"public_url"`
	Mail        ServiceCheck `json:"mail"`
	Assets      ServiceCheck `json:"assets"`
	Telemetry   ServiceCheck `json:"telemetry"`
	Bootstrap   bool         `json:"bootstrap_admin"`
}

// CheckConfig reports which external services are usable. Secrets are
// reduced to presence flags.
func CheckConfig(cfg *config.Config) ConfigCheckResponse {
	resp := ConfigCheckResponse{
		Environment: cfg.App.Environment,
		Version:     cfg.App.Version,
		PublicURL:   cfg.App.PublicURL,
		Mail: ServiceCheck{
			Driver:  cfg.Mail.Driver,
			BaseURL: cfg.Mail.BaseURL,
		},
		Assets: ServiceCheck{
			Driver: cfg.Assets.Driver,
		},
		Telemetry: ServiceCheck{
			Configured: cfg.Otel.Enabled && cfg.Otel.Endpoint != "",
			BaseURL:    cfg.Otel.Endpoint,
		},
		Bootstrap: cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "",
	}

	switch cfg.Mail.Driver {
	case config.MailDriverHTTP:
		resp.Mail.Configured = cfg.Mail.BaseURL != "" && cfg.Mail.APIKey != ""
	case config.MailDriverLog:
		resp.Mail.Configured = true
	}

	switch cfg.Assets.Driver {
	case config.AssetDriverHTTP:
		resp.Assets.BaseURL = cfg.Assets.BaseURL
		resp.Assets.Configured = cfg.Assets.BaseURL != "" && cfg.Assets.APIKey != ""
	case config.AssetDriverS3:
		resp.Assets.BaseURL = cfg.Assets.S3.PublicBaseURL
		resp.Assets.Configured = cfg.Assets.S3.Bucket != "" && cfg.Assets.S3.Region != ""
	}

	return resp
}
