// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	MailDriverHTTP = "http"
	MailDriverLog  = "log"

	AssetDriverHTTP = "http"
	AssetDriverS3   = "s3"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Mail      MailConfig      `koanf:"mail"`
	Assets    AssetsConfig    `koanf:"assets"`
	OTP       OTPConfig       `koanf:"otp"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	PublicURL   string `koanf:"public_url"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests     int           `koanf:"requests"`
	Window       time.Duration `koanf:"window"`
	Burst        int           `koanf:"burst"`
	AuthRequests int           `koanf:"auth_requests"`
	AuthWindow   time.Duration `koanf:"auth_window"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

type MailConfig struct {
	Driver   string        `koanf:"driver"`
	BaseURL  string        `koanf:"base_url"`
	APIKey   string        `koanf:"api_key"`
	From     string        `koanf:"from"`
	FromName string        `koanf:"from_name"`
	Timeout  time.Duration `koanf:"timeout"`
}

type AssetsConfig struct {
	Driver         string        `koanf:"driver"`
	BaseURL        string        `koanf:"base_url"`
	APIKey         string        `koanf:"api_key"`
	ClientID       string        `koanf:"client_id"`
	ProjectName    string        `koanf:"project_name"`
	MaxUploadBytes int64         `koanf:"max_upload_bytes"`
	Timeout        time.Duration `koanf:"timeout"`
	S3             S3Config      `koanf:"s3"`
}

type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	PublicBaseURL   string `koanf:"public_base_url"`
	UsePathStyle    bool   `koanf:"use_path_style"`
}

type OTPConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type BootstrapConfig struct {
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`
	AdminName     string `koanf:"admin_name"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "AND Offer",
		"app.version":     "1.0.0",
		"app.environment": "development",
		"app.public_url":  "http://localhost:3000",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire":  "15m",
		"jwt.refresh_token_expire": "168h",
		"jwt.issuer":               "andoffer",
		"jwt.audience":             "andoffer-api",
		"jwt.private_key_path":     "keys/private.pem",
		"jwt.public_key_path":      "keys/public.pem",

		"rate_limit.requests":      100,
		"rate_limit.window":        "1m",
		"rate_limit.burst":         20,
		"rate_limit.auth_requests": 10,
		"rate_limit.auth_window":   "1m",

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "andoffer",

		"mail.driver":    MailDriverHTTP,
		"mail.from":      "noreply@andoffer.com",
		"mail.from_name": "AND Offer",
		"mail.timeout":   "10s",

		"assets.driver":           AssetDriverHTTP,
		"assets.project_name":     "andoffer",
		"assets.max_upload_bytes": 15 << 20,
		"assets.timeout":          "30s",
		"assets.s3.region":        "us-east-1",

		"otp.ttl": "15m",

		"bootstrap.admin_name": "Super Admin",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                "database.url",
	"REDIS_URL":                   "redis.url",
	"ENVIRONMENT":                 "app.environment",
	"PUBLIC_URL":                  "app.public_url",
	"HOST":                        "server.host",
	"PORT":                        "server.port",
	"LOG_LEVEL":                   "log.level",
	"LOG_FORMAT":                  "log.format",
	"JWT_PRIVATE_KEY_PATH":        "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":         "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":     "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE":    "jwt.refresh_token_expire",
	"JWT_ISSUER":                  "jwt.issuer",
	"JWT_AUDIENCE":                "jwt.audience",
	"RATE_LIMIT_REQUESTS":         "rate_limit.requests",
	"RATE_LIMIT_WINDOW":           "rate_limit.window",
	"RATE_LIMIT_BURST":            "rate_limit.burst",
	"RATE_LIMIT_AUTH_REQUESTS":    "rate_limit.auth_requests",
	"RATE_LIMIT_AUTH_WINDOW":      "rate_limit.auth_window",
	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",
	"MAIL_DRIVER":                 "mail.driver",
	"EMAIL_SERVICE_URL":           "mail.base_url",
	"EMAIL_API_KEY":               "mail.api_key",
	"EMAIL_FROM":                  "mail.from",
	"EMAIL_FROM_NAME":             "mail.from_name",
	"ASSETS_DRIVER":               "assets.driver",
	"ASSETS_API_URL":              "assets.base_url",
	"ASSETS_API_KEY":              "assets.api_key",
	"ASSETS_CLIENT_ID":            "assets.client_id",
	"ASSETS_PROJECT_NAME":         "assets.project_name",
	"ASSETS_MAX_UPLOAD_BYTES":     "assets.max_upload_bytes",
	"S3_BUCKET":                   "assets.s3.bucket",
	"S3_REGION":                   "assets.s3.region",
	"S3_ENDPOINT":                 "assets.s3.endpoint",
	"S3_ACCESS_KEY_ID":            "assets.s3.access_key_id",
	"S3_SECRET_ACCESS_KEY":        "assets.s3.secret_access_key",
	"S3_PUBLIC_BASE_URL":          "assets.s3.public_base_url",
	"S3_USE_PATH_STYLE":           "assets.s3.use_path_style",
	"OTP_TTL":                     "otp.ttl",
	"SUPER_ADMIN_EMAIL":           "bootstrap.admin_email",
	"SUPER_ADMIN_PASSWORD":        "bootstrap.admin_password",
	"SUPER_ADMIN_NAME":            "bootstrap.admin_name",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

var placeholderSecrets = []string{
	"ek_build_placeholder",
	"changeme",
	"your-api-key",
	"placeholder",
}

// IsPlaceholderSecret reports whether s is empty or a value shipped in
// sample env files rather than a real credential.
func IsPlaceholderSecret(s string) bool {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" {
		return true
	}
	for _, p := range placeholderSecrets {
		if v == p {
			return true
		}
	}
	return false
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
		if c.Mail.Driver == MailDriverLog {
			return fmt.Errorf("MAIL_DRIVER=log is not allowed in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	if err := validateMail(c.Mail); err != nil {
		return err
	}

	if err := validateAssets(c.Assets); err != nil {
		return err
	}

	if c.OTP.TTL <= 0 {
		return fmt.Errorf("otp.ttl must be positive")
	}

	return nil
}

func validateMail(m MailConfig) error {
	switch m.Driver {
	case MailDriverLog:
		return nil
	case MailDriverHTTP:
		if m.BaseURL == "" {
			return fmt.Errorf("EMAIL_SERVICE_URL is required")
		}
		if IsPlaceholderSecret(m.APIKey) {
			return fmt.Errorf("EMAIL_API_KEY is missing or a placeholder")
		}
		if m.From == "" {
			return fmt.Errorf("EMAIL_FROM is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown mail driver %q", m.Driver)
	}
}

func validateAssets(a AssetsConfig) error {
	if a.MaxUploadBytes <= 0 {
		return fmt.Errorf("assets.max_upload_bytes must be positive")
	}

	switch a.Driver {
	case AssetDriverHTTP:
		if a.BaseURL == "" {
			return fmt.Errorf("ASSETS_API_URL is required")
		}
		if IsPlaceholderSecret(a.APIKey) {
			return fmt.Errorf("ASSETS_API_KEY is missing or a placeholder")
		}
		return nil
	case AssetDriverS3:
		if a.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required")
		}
		if a.S3.Region == "" {
			return fmt.Errorf("S3_REGION is required")
		}
		return nil
	default:
		return fmt.Errorf("unknown assets driver %q", a.Driver)
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

