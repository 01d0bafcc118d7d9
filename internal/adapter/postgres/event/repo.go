// Package event implements the event log repository using PostgreSQL.
// Fixed-shape statements are raw SQL; filtered reads are built with squirrel.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ntotao/baby-tracker/internal/adapter/postgres"
	"github.com/ntotao/baby-tracker/internal/domain"
)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new event repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

var columns = []string{"id", "tenant_id", "user_id", "occurred_at", "event_type", "details", "summary", "ended_at"}

const appendSQL = `
INSERT INTO events (tenant_id, user_id, occurred_at, event_type, details, summary, ended_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

// removeMostRecentSQL deletes in one statement so concurrent callers never
// remove more than one row each.
const removeMostRecentSQL = `
DELETE FROM events
WHERE id = (
    SELECT id FROM events
    WHERE tenant_id = $1
    ORDER BY occurred_at DESC, id DESC
    LIMIT 1
)`

const lastOfTypesSQL = `
SELECT DISTINCT ON (event_type)
    id, tenant_id, user_id, occurred_at, event_type, details, summary, ended_at
FROM events
WHERE tenant_id = $1 AND event_type = ANY($2::text[])
ORDER BY event_type, occurred_at DESC, id DESC`

const countByTypeSinceSQL = `
SELECT event_type, count(*)
FROM events
WHERE tenant_id = $1 AND occurred_at >= $2
GROUP BY event_type`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append inserts a new event. A nil timestamp defaults to the current time.
func (r *Repo) Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	details := in.Details
	if details == nil {
		details = domain.Details{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}

	ts := r.now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}

	ev := domain.Event{
		TenantID:  in.TenantID,
		UserID:    in.UserID,
		Timestamp: ts,
		Type:      in.Type,
		Details:   details,
		Summary:   in.Summary,
		EndedAt:   domain.EndFromDetails(ts, details),
	}

	err = q.QueryRow(ctx, appendSQL,
		ev.TenantID, ev.UserID, ev.Timestamp, string(ev.Type), raw, ev.Summary, ev.EndedAt,
	).Scan(&ev.ID)
	if err != nil {
		return nil, postgres.MapError(err, "event", in.TenantID)
	}

	return &ev, nil
}

// RemoveMostRecent deletes the newest event of the tenant.
// Returns false when the tenant has no events.
func (r *Repo) RemoveMostRecent(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, removeMostRecentSQL, tenantID)
	if err != nil {
		return false, postgres.MapError(err, "event", tenantID)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Recent returns the newest events of the tenant, newest first.
func (r *Repo) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Event, error) {
	query := newestFirst(selectEvents(tenantID)).Limit(uint64(limit))
	return r.list(ctx, query, tenantID)
}

// ByType returns the newest events of one type, newest first.
func (r *Repo) ByType(ctx context.Context, tenantID uuid.UUID, t domain.EventType, limit int) ([]domain.Event, error) {
	query := newestFirst(selectEvents(tenantID).Where(sq.Eq{"event_type": t.Literals()})).Limit(uint64(limit))
	return r.list(ctx, query, tenantID)
}

// LastOfType returns the newest event of one type, or nil when there is none.
func (r *Repo) LastOfType(ctx context.Context, tenantID uuid.UUID, t domain.EventType) (*domain.Event, error) {
	events, err := r.ByType(ctx, tenantID, t, 1)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// LastOfTypes returns the newest event of each requested type in one query.
// Types without events are absent from the map.
func (r *Repo) LastOfTypes(ctx context.Context, tenantID uuid.UUID, types []domain.EventType) (map[domain.EventType]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var names []string
	for _, t := range types {
		names = append(names, t.Literals()...)
	}

	rows, err := q.Query(ctx, lastOfTypesSQL, tenantID, names)
	if err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}

	return newestByType(events), nil
}

// InRange returns events overlapping the half-open range [start, end),
// oldest first. Point events match on their timestamp, interval events on
// their span.
func (r *Repo) InRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.Event, error) {
	query := selectEvents(tenantID).
		Where(sq.Lt{"occurred_at": end.UTC()}).
		Where(sq.Or{
			sq.And{sq.Eq{"ended_at": nil}, sq.GtOrEq{"occurred_at": start.UTC()}},
			sq.Gt{"ended_at": start.UTC()},
		}).
		OrderBy("occurred_at ASC", "id ASC")
	return r.list(ctx, query, tenantID)
}

// Since returns events at or after from, newest first.
func (r *Repo) Since(ctx context.Context, tenantID uuid.UUID, from time.Time) ([]domain.Event, error) {
	query := newestFirst(selectEvents(tenantID).Where(sq.GtOrEq{"occurred_at": from.UTC()}))
	return r.list(ctx, query, tenantID)
}

// Page returns one page of history, newest first, and whether more exist.
func (r *Repo) Page(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Event, bool, error) {
	query := newestFirst(selectEvents(tenantID)).
		Offset(uint64(offset)).
		Limit(uint64(limit + 1))

	events, err := r.list(ctx, query, tenantID)
	if err != nil {
		return nil, false, err
	}
	if len(events) > limit {
		return events[:limit], true, nil
	}
	return events, false, nil
}

// CountByTypeSince counts events at or after from, grouped by normalized type.
func (r *Repo) CountByTypeSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (domain.Counts, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := q.Query(ctx, countByTypeSinceSQL, tenantID, from.UTC())
	if err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}
	defer rows.Close()

	counts := domain.Counts{}
	for rows.Next() {
		var (
			raw string
			n   int
		)
		if err := rows.Scan(&raw, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		// Legacy literals collapse onto their current type.
		counts[domain.ParseEventType(raw)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func selectEvents(tenantID uuid.UUID) sq.SelectBuilder {
	return postgres.Builder().
		Select(columns...).
		From("events").
		Where(sq.Eq{"tenant_id": tenantID})
}

func newestFirst(b sq.SelectBuilder) sq.SelectBuilder {
	return b.OrderBy("occurred_at DESC", "id DESC")
}

func (r *Repo) list(ctx context.Context, query sq.SelectBuilder, tenantID uuid.UUID) ([]domain.Event, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}

	events, err := scanEvents(rows)
	if err != nil {
		return nil, postgres.MapError(err, "event", tenantID)
	}
	return events, nil
}

// newestByType keeps the newest event per normalized type. Rows come back
// once per stored literal, so a legacy alias can compete with its modern form.
func newestByType(events []domain.Event) map[domain.EventType]domain.Event {
	out := make(map[domain.EventType]domain.Event, len(events))
	for _, ev := range events {
		cur, ok := out[ev.Type]
		if !ok || ev.Timestamp.After(cur.Timestamp) || (ev.Timestamp.Equal(cur.Timestamp) && ev.ID > cur.ID) {
			out[ev.Type] = ev
		}
	}
	return out
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			ev      domain.Event
			rawType string
			details []byte
		)
		if err := rows.Scan(
			&ev.ID, &ev.TenantID, &ev.UserID, &ev.Timestamp,
			&rawType, &details, &ev.Summary, &ev.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		ev.Type = domain.ParseEventType(rawType)
		ev.Details = domain.Details{}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &ev.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details of event %d: %w", ev.ID, err)
			}
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}
