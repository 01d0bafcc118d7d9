package domain

import (
	"errors"
	"testing"
	"time"
)

func TestBaby_Validate(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -2, 0)
	future := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		baby    Baby
		wantErr bool
	}{
		{"valid", Baby{Name: "Leo", BirthDate: &past}, false},
		{"no birth date", Baby{Name: "Leo"}, false},
		{"unicode name", Baby{Name: "Zoë"}, false},
		{"too short", Baby{Name: "L"}, true},
		{"too long", Baby{Name: "abcdefghijabcdefghijabcdefghijX"}, true},
		{"future birth", Baby{Name: "Leo", BirthDate: &future}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.baby.Validate(now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestBaby_AgeDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	birth := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := (&Baby{BirthDate: &birth}).AgeDays(now); got != 10 {
		t.Errorf("AgeDays() = %d, want 10", got)
	}
	if got := (&Baby{}).AgeDays(now); got != -1 {
		t.Errorf("AgeDays() without birth date = %d, want -1", got)
	}
}
