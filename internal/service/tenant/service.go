// Package tenant resolves chat identities to tenants and manages tenant
// membership.
package tenant

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

// InvitePrefix marks a start payload that joins an existing tenant.
const InvitePrefix = "invite_"

type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetByAdmin(ctx context.Context, userID int64) (*domain.Tenant, error)
	Create(ctx context.Context, t *domain.Tenant) error
	AddMember(ctx context.Context, id uuid.UUID, userID int64) (bool, error)
	SetTimezone(ctx context.Context, id uuid.UUID, tz string) error
}

// Service provides tenant resolution and membership operations.
type Service struct {
	tenants         Store
	defaultTimezone string
	log             *slog.Logger
	now             func() time.Time
}

// NewService creates a new tenant service. New tenants start in defaultTimezone.
func NewService(log *slog.Logger, tenants Store, defaultTimezone string) *Service {
	if defaultTimezone == "" {
		defaultTimezone = "UTC"
	}
	return &Service{
		tenants:         tenants,
		defaultTimezone: defaultTimezone,
		log:             log.With("service", "tenant"),
		now:             time.Now,
	}
}

// Resolve returns the tenant created by userID.
//
// Only creators are recognized: members added through invites are stored
// in allowed_users but are not resolved here. Lookup by membership would
// need an identity-to-tenant table.
func (s *Service) Resolve(ctx context.Context, userID int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByAdmin(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}
	return t, nil
}

// Get returns a tenant by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// Create registers a new tenant with userID as creator and sole member.
// Returns domain.ErrAlreadyExists when userID already created one.
func (s *Service) Create(ctx context.Context, userID int64) (*domain.Tenant, error) {
	if _, err := s.tenants.GetByAdmin(ctx, userID); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing tenant: %w", err)
	}

	t := &domain.Tenant{
		ID:           uuid.New(),
		AdminUserID:  userID,
		AllowedUsers: []int64{userID},
		Timezone:     s.defaultTimezone,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.tenants.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	s.log.InfoContext(ctx, "tenant created",
		slog.String("tenant_id", t.ID.String()),
		slog.Int64("admin_user_id", userID),
	)
	return t, nil
}

// AddMember authorizes userID on the tenant. Returns false when the tenant
// does not exist. Adding an existing member is a no-op.
func (s *Service) AddMember(ctx context.Context, tenantID uuid.UUID, userID int64) (bool, error) {
	ok, err := s.tenants.AddMember(ctx, tenantID, userID)
	if err != nil {
		return false, fmt.Errorf("add member: %w", err)
	}
	if ok {
		s.log.InfoContext(ctx, "tenant member added",
			slog.String("tenant_id", tenantID.String()),
			slog.Int64("user_id", userID),
		)
	}
	return ok, nil
}

// AcceptInvite joins userID to the tenant named by an invite start payload.
func (s *Service) AcceptInvite(ctx context.Context, payload string, userID int64) (uuid.UUID, error) {
	id, ok := ParseInvitePayload(payload)
	if !ok {
		return uuid.Nil, domain.NewValidationError("invite", "malformed payload")
	}
	joined, err := s.AddMember(ctx, id, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if !joined {
		return uuid.Nil, domain.ErrTenantNotFound
	}
	return id, nil
}

// SetTimezone changes the day boundary used by the tenant's summaries.
func (s *Service) SetTimezone(ctx context.Context, tenantID uuid.UUID, tz string) error {
	tz = strings.TrimSpace(tz)
	if _, err := time.LoadLocation(tz); err != nil || tz == "" {
		return domain.NewValidationError("timezone", "unknown IANA timezone")
	}
	if err := s.tenants.SetTimezone(ctx, tenantID, tz); err != nil {
		return fmt.Errorf("set timezone: %w", err)
	}
	s.log.InfoContext(ctx, "tenant timezone changed",
		slog.String("tenant_id", tenantID.String()),
		slog.String("timezone", tz),
	)
	return nil
}

// InviteLink builds the deep link that adds the opener to the tenant.
func InviteLink(botUsername string, tenantID uuid.UUID) string {
	return fmt.Sprintf("https://t.me/%s?start=%s%s", botUsername, InvitePrefix, tenantID)
}

// ParseInvitePayload extracts the tenant id from an "invite_<uuid>" payload.
func ParseInvitePayload(payload string) (uuid.UUID, bool) {
	raw, ok := strings.CutPrefix(strings.TrimSpace(payload), InvitePrefix)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
