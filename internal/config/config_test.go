package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123456:telegram-test-token")
	t.Setenv("SECRET_KEY", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"

database:
  driver: "postgres"
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  min_conns: 2

telegram:
  token: "123456:telegram-test-token"
  admin_id: 42
  allowed_user_ids: "42, 43"
  webapp_url: "https://example.org/app"

session:
  backend: "redis"
  ttl: "20m"
  timer_ttl: "6h"
  redis_addr: "redis:6379"

tracker:
  default_timezone: "Europe/Rome"
  history_page_size: 5
  feeding_picker: "quick"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"

home_assistant:
  base_url: "http://ha.local:8123"
  token: "ha-token"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}

	// Database
	if cfg.Database.Driver != DriverPostgres {
		t.Errorf("database.driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}

	// Telegram
	if cfg.Telegram.AdminID != 42 {
		t.Errorf("telegram.admin_id = %d, want 42", cfg.Telegram.AdminID)
	}
	if len(cfg.Telegram.AllowList) != 2 || cfg.Telegram.AllowList[1] != 43 {
		t.Errorf("telegram.allow_list = %v, want [42 43]", cfg.Telegram.AllowList)
	}
	if cfg.Telegram.PollTimeout != 60*time.Second {
		t.Errorf("telegram.poll_timeout = %v, want default 60s", cfg.Telegram.PollTimeout)
	}

	// Session
	if cfg.Session.Backend != SessionRedis {
		t.Errorf("session.backend = %q", cfg.Session.Backend)
	}
	if cfg.Session.TTL != 20*time.Minute {
		t.Errorf("session.ttl = %v, want 20m", cfg.Session.TTL)
	}

	// Tracker
	if cfg.Tracker.DefaultTimezone != "Europe/Rome" {
		t.Errorf("tracker.default_timezone = %q", cfg.Tracker.DefaultTimezone)
	}
	if cfg.Tracker.FeedingPicker != PickerQuick {
		t.Errorf("tracker.feeding_picker = %q", cfg.Tracker.FeedingPicker)
	}

	// Home Assistant
	if !cfg.HomeAssistant.Enabled() {
		t.Error("home_assistant should be enabled")
	}
	if cfg.HomeAssistant.TimerEntity != "input_boolean.baby_feeding" {
		t.Errorf("home_assistant.timer_entity = %q", cfg.HomeAssistant.TimerEntity)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)

	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("database.driver = %q, want sqlite (default)", cfg.Database.Driver)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session.ttl = %v, want 30m (default)", cfg.Session.TTL)
	}
	if cfg.Tracker.DefaultTimezone != "UTC" {
		t.Errorf("tracker.default_timezone = %q, want UTC", cfg.Tracker.DefaultTimezone)
	}
	if cfg.Telegram.AllowList != nil {
		t.Errorf("telegram.allow_list = %v, want empty", cfg.Telegram.AllowList)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mongo" }, true},
		{"empty dsn", func(c *Config) { c.Database.DSN = "" }, true},
		{"missing telegram token", func(c *Config) { c.Telegram.Token = "" }, true},
		{"telegram disabled without token", func(c *Config) {
			c.Telegram.Enabled = false
			c.Telegram.Token = ""
		}, false},
		{"bad allow list", func(c *Config) { c.Telegram.AllowedUserIDs = "12,abc" }, true},
		{"zero workers", func(c *Config) { c.Telegram.Workers = 0 }, true},
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }, true},
		{"short jwt secret without server", func(c *Config) {
			c.Server.Enabled = false
			c.Auth.JWTSecret = ""
		}, false},
		{"nothing enabled", func(c *Config) {
			c.Server.Enabled = false
			c.Telegram.Enabled = false
		}, true},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "etcd" }, true},
		{"zero session ttl", func(c *Config) { c.Session.TTL = 0 }, true},
		{"timer ttl below ttl", func(c *Config) { c.Session.TimerTTL = time.Minute }, true},
		{"redis without addr", func(c *Config) {
			c.Session.Backend = SessionRedis
			c.Session.RedisAddr = ""
		}, true},
		{"bad timezone", func(c *Config) { c.Tracker.DefaultTimezone = "Mars/Olympus" }, true},
		{"zero page size", func(c *Config) { c.Tracker.HistoryPageSize = 0 }, true},
		{"unknown picker", func(c *Config) { c.Tracker.FeedingPicker = "wheel" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseUserIDs(t *testing.T) {
	tests := []struct {
		raw     string
		want    []int64
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"42", []int64{42}, false},
		{"42, 43,,44", []int64{42, 43, 44}, false},
		{"42,x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseUserIDs(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Enabled: true},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    ":memory:",
		},
		Telegram: TelegramConfig{
			Enabled: true,
			Token:   "123456:telegram-test-token",
			Workers: 4,
		},
		Session: SessionConfig{
			Backend:  SessionMemory,
			TTL:      30 * time.Minute,
			TimerTTL: 12 * time.Hour,
		},
		Tracker: TrackerConfig{
			DefaultTimezone: "UTC",
			HistoryPageSize: 5,
			FeedingPicker:   PickerInteractive,
			ChartDays:       7,
		},
		Auth: AuthConfig{
			JWTSecret: "this-is-a-very-long-jwt-secret-for-testing-32+",
		},
	}
}

func TestUsage_ListsEnvironment(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)()

	out := buf.String()
	for _, env := range []string{"TELEGRAM_TOKEN", "DATABASE_DRIVER", "SESSION_BACKEND", "SECRET_KEY", "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		if !strings.Contains(out, env) {
			t.Errorf("usage does not mention %s", env)
		}
	}
}
