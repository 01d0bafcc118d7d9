package domain

import (
	"testing"
	"time"
)

func TestTenant_IsMember(t *testing.T) {
	t.Parallel()

	tenant := &Tenant{AdminUserID: 1, AllowedUsers: []int64{1, 2}}

	if !tenant.IsAdmin(1) || tenant.IsAdmin(2) {
		t.Error("only the creator is admin")
	}
	if !tenant.IsMember(2) {
		t.Error("allowed user should be a member")
	}
	if tenant.IsMember(3) {
		t.Error("unknown user should not be a member")
	}
}

func TestTenant_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tz   string
		want string
	}{
		{"", "UTC"},
		{"Europe/Rome", "Europe/Rome"},
		{"Not/AZone", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.tz, func(t *testing.T) {
			t.Parallel()
			tenant := &Tenant{Timezone: tt.tz}
			if got := tenant.Location().String(); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDayStart(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	if got := DayStart(now, time.UTC); !got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("UTC day start = %v", got)
	}

	// 23:30 UTC is already the next day in Rome (UTC+1 in March before DST).
	rome := ParseTimezone("Europe/Rome")
	want := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	if got := DayStart(now, rome); !got.Equal(want) {
		t.Errorf("Rome day start = %v, want %v", got, want)
	}
	if got := NextDayStart(now, rome); !got.Equal(want.Add(24 * time.Hour)) {
		t.Errorf("Rome next day start = %v", got)
	}
}
