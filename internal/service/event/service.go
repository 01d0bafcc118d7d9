// Package event is the facade over the tenant event log. It owns the
// write path used by capture flows and the aggregation queries behind
// status, calendar and chart views.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

const (
	// DefaultRecentLimit caps Recent and ByType when the caller passes <= 0.
	DefaultRecentLimit = 20
	// MaxRecentLimit is the largest page the store is asked for.
	MaxRecentLimit = 500
	// scanChunk is the page size used by reverse scans.
	scanChunk = 100
)

type Store interface {
	Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error)
	RemoveMostRecent(ctx context.Context, tenantID uuid.UUID) (bool, error)
	Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Event, error)
	ByType(ctx context.Context, tenantID uuid.UUID, t domain.EventType, limit int) ([]domain.Event, error)
	LastOfType(ctx context.Context, tenantID uuid.UUID, t domain.EventType) (*domain.Event, error)
	LastOfTypes(ctx context.Context, tenantID uuid.UUID, types []domain.EventType) (map[domain.EventType]domain.Event, error)
	InRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.Event, error)
	Since(ctx context.Context, tenantID uuid.UUID, from time.Time) ([]domain.Event, error)
	Page(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Event, bool, error)
	CountByTypeSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (domain.Counts, error)
}

type babyRepo interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.Baby, error)
}

type timerState interface {
	Active(ctx context.Context) (bool, error)
}

// Service provides event log operations and aggregations.
type Service struct {
	events   Store
	babies   babyRepo
	timer    timerState
	pageSize int
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a new event service. babies and timer are optional
// and only enrich the status projection.
func NewService(
	log *slog.Logger,
	events Store,
	babies babyRepo,
	timer timerState,
	historyPageSize int,
) *Service {
	if historyPageSize <= 0 {
		historyPageSize = 5
	}
	return &Service{
		events:   events,
		babies:   babies,
		timer:    timer,
		pageSize: historyPageSize,
		log:      log.With("service", "event"),
		now:      time.Now,
	}
}

// Append records a new event. Details are stored as given.
func (s *Service) Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error) {
	var verr domain.ValidationError
	if in.TenantID == uuid.Nil {
		verr.Add("tenant_id", "required")
	}
	if strings.TrimSpace(string(in.Type)) == "" {
		verr.Add("type", "required")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	ev, err := s.events.Append(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}

	s.log.InfoContext(ctx, "event appended",
		slog.String("tenant_id", ev.TenantID.String()),
		slog.Int64("event_id", ev.ID),
		slog.String("type", ev.Type.String()),
		slog.Time("timestamp", ev.Timestamp),
	)

	return ev, nil
}

// RemoveMostRecent deletes the newest event. Returns false when the log is empty.
func (s *Service) RemoveMostRecent(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	removed, err := s.events.RemoveMostRecent(ctx, tenantID)
	if err != nil {
		return false, fmt.Errorf("remove most recent: %w", err)
	}
	if removed {
		s.log.InfoContext(ctx, "most recent event removed", slog.String("tenant_id", tenantID.String()))
	}
	return removed, nil
}

// Recent returns the newest events, newest first.
func (s *Service) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Event, error) {
	events, err := s.events.Recent(ctx, tenantID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return events, nil
}

// ByType returns the newest events of one type, newest first.
func (s *Service) ByType(ctx context.Context, tenantID uuid.UUID, t domain.EventType, limit int) ([]domain.Event, error) {
	events, err := s.events.ByType(ctx, tenantID, t, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("events by type: %w", err)
	}
	return events, nil
}

// LastOfType returns the newest event of type t, or nil.
func (s *Service) LastOfType(ctx context.Context, tenantID uuid.UUID, t domain.EventType) (*domain.Event, error) {
	ev, err := s.events.LastOfType(ctx, tenantID, t)
	if err != nil {
		return nil, fmt.Errorf("last of type: %w", err)
	}
	return ev, nil
}

// LastOfTypes returns the newest event of each type in one round trip.
func (s *Service) LastOfTypes(ctx context.Context, tenantID uuid.UUID, types []domain.EventType) (map[domain.EventType]domain.Event, error) {
	out, err := s.events.LastOfTypes(ctx, tenantID, types)
	if err != nil {
		return nil, fmt.Errorf("last of types: %w", err)
	}
	return out, nil
}

// InRange returns events overlapping [start, end), oldest first.
func (s *Service) InRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.Event, error) {
	if !end.After(start) {
		return nil, domain.NewValidationError("end", "must be after start")
	}
	events, err := s.events.InRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, fmt.Errorf("events in range: %w", err)
	}
	return events, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return min(limit, MaxRecentLimit)
}
