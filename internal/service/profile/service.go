// Package profile manages the optional baby profile of a tenant.
package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// BirthDateLayout is the DD/MM/YYYY form users type birth dates in.
const BirthDateLayout = "02/01/2006"

type Store interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.Baby, error)
	Upsert(ctx context.Context, b *domain.Baby) (*domain.Baby, error)
}

// Service reads and writes baby profiles.
type Service struct {
	babies Store
	log    *slog.Logger
	now    func() time.Time
}

// NewService creates a new profile service.
func NewService(log *slog.Logger, babies Store) *Service {
	return &Service{
		babies: babies,
		log:    log.With("service", "profile"),
		now:    time.Now,
	}
}

// Get returns the profile, or nil when none was saved yet.
func (s *Service) Get(ctx context.Context, tenantID uuid.UUID) (*domain.Baby, error) {
	b, err := s.babies.Get(ctx, tenantID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return b, nil
}

// ValidateName checks a baby name before the birth date is asked for.
func ValidateName(name string) error {
	b := domain.Baby{Name: strings.TrimSpace(name)}
	return b.Validate(time.Now())
}

// ParseBirthDate parses DD/MM/YYYY. Returns domain.ErrInvalidFormat on failure.
func ParseBirthDate(text string) (time.Time, error) {
	t, err := time.Parse(BirthDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("birth date %q: %w", text, domain.ErrInvalidFormat)
	}
	return t, nil
}

// Save creates or replaces the profile.
func (s *Service) Save(ctx context.Context, tenantID uuid.UUID, name string, birthDate *time.Time) (*domain.Baby, error) {
	b := &domain.Baby{
		TenantID:  tenantID,
		Name:      strings.TrimSpace(name),
		BirthDate: birthDate,
	}
	if err := b.Validate(s.now()); err != nil {
		return nil, err
	}

	saved, err := s.babies.Upsert(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.log.InfoContext(ctx, "baby profile saved", slog.String("tenant_id", tenantID.String()))
	return saved, nil
}
