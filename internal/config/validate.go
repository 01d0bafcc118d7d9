package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q (got %q)", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if err := c.Telegram.validate(); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}

	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if err := c.Tracker.validate(); err != nil {
		return fmt.Errorf("tracker: %w", err)
	}

	if c.Server.Enabled && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters when the HTTP API is enabled (got %d)", len(c.Auth.JWTSecret))
	}

	if !c.Server.Enabled && !c.Telegram.Enabled {
		return fmt.Errorf("at least one of server or telegram must be enabled")
	}

	return nil
}

func (t *TelegramConfig) validate() error {
	if t.Enabled && t.Token == "" {
		return fmt.Errorf("token is required when telegram is enabled")
	}
	if t.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", t.Workers)
	}

	ids, err := ParseUserIDs(t.AllowedUserIDs)
	if err != nil {
		return fmt.Errorf("allowed_user_ids: %w", err)
	}
	t.AllowList = ids

	return nil
}

func (s *SessionConfig) validate() error {
	switch s.Backend {
	case SessionMemory, SessionRedis:
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", SessionMemory, SessionRedis, s.Backend)
	}
	if s.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", s.TTL)
	}
	if s.TimerTTL < s.TTL {
		return fmt.Errorf("timer_ttl must be >= ttl (got %v < %v)", s.TimerTTL, s.TTL)
	}
	if s.Backend == SessionRedis && s.RedisAddr == "" {
		return fmt.Errorf("redis_addr is required for the redis backend")
	}
	return nil
}

func (t *TrackerConfig) validate() error {
	if _, err := time.LoadLocation(t.DefaultTimezone); err != nil {
		return fmt.Errorf("default_timezone: %w", err)
	}
	if t.HistoryPageSize <= 0 {
		return fmt.Errorf("history_page_size must be > 0 (got %d)", t.HistoryPageSize)
	}
	if t.ChartDays <= 0 {
		return fmt.Errorf("chart_days must be > 0 (got %d)", t.ChartDays)
	}
	switch t.FeedingPicker {
	case PickerInteractive, PickerQuick:
	default:
		return fmt.Errorf("feeding_picker must be %q or %q (got %q)", PickerInteractive, PickerQuick, t.FeedingPicker)
	}
	return nil
}

// ParseUserIDs parses a comma-separated list of chat user ids
// (e.g. "12345,67890"). An empty string returns a nil slice.
func ParseUserIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
