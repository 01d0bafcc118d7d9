package capture

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// ParseCustomTime reads a user-typed time in the tenant's zone.
//
// "HH:MM" means today, or yesterday when that clock time has not come yet.
// "DD/MM HH:MM" is taken literally in the current year.
func ParseCustomTime(text string, now time.Time, loc *time.Location) (time.Time, error) {
	text = strings.TrimSpace(text)
	local := now.In(loc)

	if t, err := time.Parse("15:04", text); err == nil {
		ts := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if ts.After(now) {
			ts = ts.AddDate(0, 0, -1)
		}
		return ts, nil
	}

	if t, err := time.Parse("02/01 15:04", text); err == nil {
		ts := time.Date(local.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc)
		if ts.Day() != t.Day() {
			return time.Time{}, fmt.Errorf("time %q: no such day in %d: %w", text, local.Year(), domain.ErrInvalidFormat)
		}
		return ts, nil
	}

	return time.Time{}, fmt.Errorf("time %q: %w", text, domain.ErrInvalidFormat)
}

// ParseValue reads a positive measurement. Both "3.5" and "3,5" are accepted.
func ParseValue(text string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("value %q: %w", text, domain.ErrInvalidNumber)
	}
	if v <= 0 {
		return 0, fmt.Errorf("value %q must be positive: %w", text, domain.ErrInvalidNumber)
	}
	return v, nil
}

// roundDown truncates now to the previous 5 minute mark in loc.
func roundDown(now time.Time, loc *time.Location) time.Time {
	l := now.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute()-l.Minute()%5, 0, 0, loc)
}

// toggleDay moves t between today and yesterday keeping its clock time.
func toggleDay(t, now time.Time, loc *time.Location) time.Time {
	if sameDay(t, now, loc) {
		return t.AddDate(0, 0, -1)
	}
	lt, ln := t.In(loc), now.In(loc)
	return time.Date(ln.Year(), ln.Month(), ln.Day(), lt.Hour(), lt.Minute(), 0, 0, loc)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func clock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}
