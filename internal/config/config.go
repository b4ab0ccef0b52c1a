package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server          ServerConfig
	DB              DBConfig
	JWT             JWTConfig
	Auth            AuthConfig
	S3              S3Config
	Email           EmailConfig
	Log             LogConfig
	CORS            CORSConfig
	RateLimit       RateLimitConfig
	Billing         BillingConfig
	Numbering       NumberingConfig
	QuotationWorker QuotationWorkerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// AuthConfig holds the credentials of the admin created on an empty database.
type AuthConfig struct {
	BootstrapUsername string `mapstructure:"bootstrap_username"`
	BootstrapPassword string `mapstructure:"bootstrap_password"`
	BootstrapName     string `mapstructure:"bootstrap_name"`
}

// S3Config holds AWS S3 settings for rendered documents.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig holds per-client request rate settings.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// BillingConfig holds tax settings.
type BillingConfig struct {
	HomeStates     []string `mapstructure:"home_states"`
	DefaultGSTRate float64  `mapstructure:"default_gst_rate"`
	ShopName       string   `mapstructure:"shop_name"`
	ShopAddress    string   `mapstructure:"shop_address"`
	ShopGSTIN      string   `mapstructure:"shop_gstin"`
}

// NumberingConfig holds document number allocation settings.
type NumberingConfig struct {
	MaxCandidates    int `mapstructure:"max_candidates"`
	WriteRetries int `mapstructure:"write_retries"`
}

// QuotationWorkerConfig holds quotation expiry worker settings.
type QuotationWorkerConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	PollIntervalSecs int  `mapstructure:"poll_interval_secs"`
	BatchSize        int  `mapstructure:"batch_size"`
}

// Load reads configuration from environment variables with the REPAIRDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REPAIRDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "repairdesk")
	v.SetDefault("db.password", "repairdesk_secret")
	v.SetDefault("db.name", "repairdesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "repairdesk")

	// Bootstrap admin
	v.SetDefault("auth.bootstrap_username", "admin")
	v.SetDefault("auth.bootstrap_password", "")
	v.SetDefault("auth.bootstrap_name", "Administrator")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "repairdesk-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@repairdesk.local")
	v.SetDefault("email.from_name", "RepairDesk")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000")

	// Rate limit defaults
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	// Billing defaults
	v.SetDefault("billing.home_states", "andhra pradesh,ap")
	v.SetDefault("billing.default_gst_rate", 18)
	v.SetDefault("billing.shop_name", "RepairDesk Service Centre")
	v.SetDefault("billing.shop_address", "")
	v.SetDefault("billing.shop_gstin", "")

	// Numbering defaults
	v.SetDefault("numbering.max_candidates", 100000)
	v.SetDefault("numbering.write_retries", 5)

	// Quotation worker defaults
	v.SetDefault("quotation_worker.enabled", true)
	v.SetDefault("quotation_worker.poll_interval_secs", 3600)
	v.SetDefault("quotation_worker.batch_size", 100)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                         "REPAIRDESK_SERVER_PORT",
		"server.read_timeout":                 "REPAIRDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":                "REPAIRDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":                  "REPAIRDESK_SERVER_ENVIRONMENT",
		"db.host":                             "REPAIRDESK_DB_HOST",
		"db.port":                             "REPAIRDESK_DB_PORT",
		"db.user":                             "REPAIRDESK_DB_USER",
		"db.password":                         "REPAIRDESK_DB_PASSWORD",
		"db.name":                             "REPAIRDESK_DB_NAME",
		"db.sslmode":                          "REPAIRDESK_DB_SSLMODE",
		"db.max_open":                         "REPAIRDESK_DB_MAX_OPEN",
		"db.max_idle":                         "REPAIRDESK_DB_MAX_IDLE",
		"jwt.secret":                          "REPAIRDESK_JWT_SECRET",
		"jwt.access_expiry":                   "REPAIRDESK_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":                  "REPAIRDESK_JWT_REFRESH_EXPIRY",
		"jwt.issuer":                          "REPAIRDESK_JWT_ISSUER",
		"auth.bootstrap_username":             "REPAIRDESK_AUTH_BOOTSTRAP_USERNAME",
		"auth.bootstrap_password":             "REPAIRDESK_AUTH_BOOTSTRAP_PASSWORD",
		"auth.bootstrap_name":                 "REPAIRDESK_AUTH_BOOTSTRAP_NAME",
		"s3.region":                           "REPAIRDESK_S3_REGION",
		"s3.bucket":                           "REPAIRDESK_S3_BUCKET",
		"s3.endpoint":                         "REPAIRDESK_S3_ENDPOINT",
		"s3.access_key":                       "REPAIRDESK_S3_ACCESS_KEY",
		"s3.secret_key":                       "REPAIRDESK_S3_SECRET_KEY",
		"s3.presign_expiry":                   "REPAIRDESK_S3_PRESIGN_EXPIRY",
		"email.provider":                      "REPAIRDESK_EMAIL_PROVIDER",
		"email.region":                        "REPAIRDESK_EMAIL_REGION",
		"email.from_address":                  "REPAIRDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":                     "REPAIRDESK_EMAIL_FROM_NAME",
		"log.level":                           "REPAIRDESK_LOG_LEVEL",
		"log.format":                          "REPAIRDESK_LOG_FORMAT",
		"cors.allowed_origins":                "REPAIRDESK_CORS_ALLOWED_ORIGINS",
		"rate_limit.enabled":                  "REPAIRDESK_RATE_LIMIT_ENABLED",
		"rate_limit.requests_per_second":      "REPAIRDESK_RATE_LIMIT_REQUESTS_PER_SECOND",
		"rate_limit.burst":                    "REPAIRDESK_RATE_LIMIT_BURST",
		"billing.home_states":                 "REPAIRDESK_BILLING_HOME_STATES",
		"billing.default_gst_rate":            "REPAIRDESK_BILLING_DEFAULT_GST_RATE",
		"billing.shop_name":                   "REPAIRDESK_BILLING_SHOP_NAME",
		"billing.shop_address":                "REPAIRDESK_BILLING_SHOP_ADDRESS",
		"billing.shop_gstin":                  "REPAIRDESK_BILLING_SHOP_GSTIN",
		"numbering.max_candidates":                "REPAIRDESK_NUMBERING_MAX_CANDIDATES",
		"numbering.write_retries":             "REPAIRDESK_NUMBERING_WRITE_RETRIES",
		"quotation_worker.enabled":            "REPAIRDESK_QUOTATION_WORKER_ENABLED",
		"quotation_worker.poll_interval_secs": "REPAIRDESK_QUOTATION_WORKER_POLL_INTERVAL_SECS",
		"quotation_worker.batch_size":         "REPAIRDESK_QUOTATION_WORKER_BATCH_SIZE",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if REPAIRDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("REPAIRDESK_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Auth = AuthConfig{
		BootstrapUsername: v.GetString("auth.bootstrap_username"),
		BootstrapPassword: v.GetString("auth.bootstrap_password"),
		BootstrapName:     v.GetString("auth.bootstrap_name"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.RateLimit = RateLimitConfig{
		Enabled:           v.GetBool("rate_limit.enabled"),
		RequestsPerSecond: v.GetFloat64("rate_limit.requests_per_second"),
		Burst:             v.GetInt("rate_limit.burst"),
	}
	cfg.Billing = BillingConfig{
		HomeStates:     splitList(v.GetString("billing.home_states")),
		DefaultGSTRate: v.GetFloat64("billing.default_gst_rate"),
		ShopName:       v.GetString("billing.shop_name"),
		ShopAddress:    v.GetString("billing.shop_address"),
		ShopGSTIN:      v.GetString("billing.shop_gstin"),
	}
	cfg.Numbering = NumberingConfig{
		MaxCandidates:    v.GetInt("numbering.max_candidates"),
		WriteRetries: v.GetInt("numbering.write_retries"),
	}
	cfg.QuotationWorker = QuotationWorkerConfig{
		Enabled:          v.GetBool("quotation_worker.enabled"),
		PollIntervalSecs: v.GetInt("quotation_worker.poll_interval_secs"),
		BatchSize:        v.GetInt("quotation_worker.batch_size"),
	}

	if cfg.Numbering.WriteRetries < 1 {
		return nil, fmt.Errorf("numbering.write_retries must be at least 1, got %d", cfg.Numbering.WriteRetries)
	}
	if cfg.QuotationWorker.PollIntervalSecs < 1 {
		return nil, fmt.Errorf("quotation_worker.poll_interval_secs must be at least 1, got %d", cfg.QuotationWorker.PollIntervalSecs)
	}
	if cfg.Billing.DefaultGSTRate <= -100 {
		return nil, fmt.Errorf("billing.default_gst_rate must be greater than -100, got %v", cfg.Billing.DefaultGSTRate)
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
