package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Tenant is one household's isolated event namespace.
type Tenant struct {
	ID           uuid.UUID
	AdminUserID  int64
	AllowedUsers []int64
	Timezone     string
	IsPremium    bool
	CreatedAt    time.Time
}

// IsAdmin reports whether userID created the tenant.
func (t *Tenant) IsAdmin(userID int64) bool {
	return t.AdminUserID == userID
}

// IsMember reports whether userID is authorized on the tenant.
func (t *Tenant) IsMember(userID int64) bool {
	return t.IsAdmin(userID) || slices.Contains(t.AllowedUsers, userID)
}

// Location returns the tenant's timezone, UTC when unset or invalid.
func (t *Tenant) Location() *time.Location {
	return ParseTimezone(t.Timezone)
}

// ParseTimezone parses a timezone string, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayStart returns the start of the current day in tz, converted to UTC.
func DayStart(now time.Time, tz *time.Location) time.Time {
	local := now.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz).UTC()
}

// NextDayStart returns the start of the next day in tz, converted to UTC.
func NextDayStart(now time.Time, tz *time.Location) time.Time {
	// AddDate handles DST correctly, Add(24h) does not
	next := DayStart(now, tz).In(tz).AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, tz).UTC()
}
