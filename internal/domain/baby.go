package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	BabyNameMinLen = 2
	BabyNameMaxLen = 30
)

// Baby is the optional profile attached to a tenant.
type Baby struct {
	TenantID  uuid.UUID
	Name      string
	BirthDate *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeDays returns the number of whole days since birth, or -1 when unknown.
func (b *Baby) AgeDays(now time.Time) int {
	if b.BirthDate == nil {
		return -1
	}
	return int(now.Sub(*b.BirthDate).Hours() / 24)
}

// Validate checks profile fields against now.
func (b *Baby) Validate(now time.Time) error {
	var verr ValidationError
	if n := utf8.RuneCountInString(b.Name); n < BabyNameMinLen || n > BabyNameMaxLen {
		verr.Add("name", "must be 2-30 characters")
	}
	if b.BirthDate != nil && b.BirthDate.After(now) {
		verr.Add("birth_date", "must not be in the future")
	}
	return verr.Err()
}
