package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Telegram      TelegramConfig      `yaml:"telegram"`
	Session       SessionConfig       `yaml:"session"`
	Tracker       TrackerConfig       `yaml:"tracker"`
	Auth          AuthConfig          `yaml:"auth"`
	HomeAssistant HomeAssistantConfig `yaml:"home_assistant"`
	CORS          CORSConfig          `yaml:"cors"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`
	Log           LogConfig           `yaml:"log"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"SERVER_ENABLED"          env-default:"true"`
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds persistence settings. The sqlite driver takes a file
// path (or ":memory:") as DSN.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"sqlite"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-default:"./baby_tracker.db"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// TelegramConfig holds chat bot settings.
type TelegramConfig struct {
	Enabled        bool          `yaml:"enabled"          env:"TELEGRAM_ENABLED"          env-default:"true"`
	Token          string        `yaml:"token"            env:"TELEGRAM_TOKEN"`
	AdminID        int64         `yaml:"admin_id"         env:"TELEGRAM_ADMIN_ID"`
	AllowedUserIDs string        `yaml:"allowed_user_ids" env:"TELEGRAM_ALLOWED_USER_IDS"`
	PollTimeout    time.Duration `yaml:"poll_timeout"     env:"TELEGRAM_POLL_TIMEOUT"     env-default:"60s"`
	Workers        int           `yaml:"workers"          env:"TELEGRAM_WORKERS"          env-default:"4"`
	WebAppURL      string        `yaml:"webapp_url"       env:"WEBAPP_URL"`
	Debug          bool          `yaml:"debug"            env:"TELEGRAM_DEBUG"            env-default:"false"`

	// AllowList is parsed from AllowedUserIDs during validation.
	AllowList []int64 `yaml:"-" env:"-"`
}

// Session store backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// SessionConfig holds capture-session storage settings.
type SessionConfig struct {
	Backend       string        `yaml:"backend"        env:"SESSION_BACKEND"        env-default:"memory"`
	TTL           time.Duration `yaml:"ttl"            env:"SESSION_TTL"            env-default:"30m"`
	TimerTTL      time.Duration `yaml:"timer_ttl"      env:"SESSION_TIMER_TTL"      env-default:"12h"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"1m"`
	RedisAddr     string        `yaml:"redis_addr"     env:"SESSION_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"SESSION_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"SESSION_REDIS_DB"       env-default:"0"`
}

// Feeding picker variants.
const (
	PickerInteractive = "interactive"
	PickerQuick       = "quick"
)

// TrackerConfig holds product behaviour settings.
type TrackerConfig struct {
	DefaultTimezone string `yaml:"default_timezone"  env:"TRACKER_DEFAULT_TIMEZONE"  env-default:"UTC"`
	HistoryPageSize int    `yaml:"history_page_size" env:"TRACKER_HISTORY_PAGE_SIZE" env-default:"5"`
	FeedingPicker   string `yaml:"feeding_picker"    env:"TRACKER_FEEDING_PICKER"    env-default:"interactive"`
	ChartDays       int    `yaml:"chart_days"        env:"TRACKER_CHART_DAYS"        env-default:"7"`
}

// AuthConfig holds API token settings.
type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"    env:"SECRET_KEY"`
	JWTIssuer   string        `yaml:"jwt_issuer"    env:"AUTH_JWT_ISSUER"    env-default:"baby-tracker"`
	APITokenTTL time.Duration `yaml:"api_token_ttl" env:"AUTH_API_TOKEN_TTL" env-default:"8760h"`
}

// HomeAssistantConfig holds the optional durable timer toggle settings.
type HomeAssistantConfig struct {
	BaseURL     string        `yaml:"base_url"     env:"HA_BASE_URL"`
	Token       string        `yaml:"token"        env:"HA_TOKEN"`
	TimerEntity string        `yaml:"timer_entity" env:"HA_TIMER_ENTITY" env-default:"input_boolean.baby_feeding"`
	Timeout     time.Duration `yaml:"timeout"      env:"HA_TIMEOUT"      env-default:"5s"`
}

// Enabled reports whether the Home Assistant bridge is configured.
func (c HomeAssistantConfig) Enabled() bool {
	return c.BaseURL != "" && c.Token != ""
}

// RateLimitConfig holds per-IP limits for the HTTP API.
type RateLimitConfig struct {
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"120"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// TelemetryConfig holds OpenTelemetry exporter settings.
// Tracing is disabled when OTLPEndpoint is empty.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool   `yaml:"insecure"      env:"OTEL_EXPORTER_OTLP_INSECURE" env-default:"false"`
	ServiceName  string `yaml:"service_name"  env:"OTEL_SERVICE_NAME"           env-default:"baby-tracker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
