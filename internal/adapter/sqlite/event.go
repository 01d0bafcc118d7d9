package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// EventStore is the event log backed by SQLite.
type EventStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewEventStore creates an event store on an opened and migrated database.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db, now: time.Now}
}

var eventColumns = []string{"id", "tenant_id", "user_id", "occurred_at", "event_type", "details", "summary", "ended_at"}

const removeMostRecentSQL = `
DELETE FROM events
WHERE id = (
    SELECT id FROM events
    WHERE tenant_id = ?
    ORDER BY occurred_at DESC, id DESC
    LIMIT 1
)`

const countByTypeSinceSQL = `
SELECT event_type, count(*)
FROM events
WHERE tenant_id = ? AND occurred_at >= ?
GROUP BY event_type`

// Append inserts a new event. A nil timestamp defaults to the current time.
func (s *EventStore) Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error) {
	details := in.Details
	if details == nil {
		details = domain.Details{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal details: %w", err)
	}

	ts := s.now().UTC()
	if in.Timestamp != nil {
		ts = in.Timestamp.UTC()
	}
	ts = ts.Truncate(time.Microsecond)

	ev := domain.Event{
		TenantID:  in.TenantID,
		UserID:    in.UserID,
		Timestamp: ts,
		Type:      in.Type,
		Details:   details,
		Summary:   in.Summary,
		EndedAt:   domain.EndFromDetails(ts, details),
	}

	query, args, err := builder().
		Insert("events").
		Columns(eventColumns[1:]...).
		Values(ev.TenantID, ev.UserID, toMicros(ts), string(ev.Type), string(raw), ev.Summary, toMicrosPtr(ev.EndedAt)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "event", in.TenantID)
	}
	if ev.ID, err = res.LastInsertId(); err != nil {
		return nil, mapError(err, "event", in.TenantID)
	}

	return &ev, nil
}

// RemoveMostRecent deletes the newest event of the tenant.
// Returns false when the tenant has no events.
func (s *EventStore) RemoveMostRecent(ctx context.Context, tenantID uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, removeMostRecentSQL, tenantID)
	if err != nil {
		return false, mapError(err, "event", tenantID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(err, "event", tenantID)
	}
	return n > 0, nil
}

// Recent returns the newest events of the tenant, newest first.
func (s *EventStore) Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Event, error) {
	return s.list(ctx, newestFirst(selectEvents(tenantID)).Limit(uint64(limit)), tenantID)
}

// ByType returns the newest events of one type, newest first.
func (s *EventStore) ByType(ctx context.Context, tenantID uuid.UUID, t domain.EventType, limit int) ([]domain.Event, error) {
	query := newestFirst(selectEvents(tenantID).Where(sq.Eq{"event_type": t.Literals()})).Limit(uint64(limit))
	return s.list(ctx, query, tenantID)
}

// LastOfType returns the newest event of one type, or nil when there is none.
func (s *EventStore) LastOfType(ctx context.Context, tenantID uuid.UUID, t domain.EventType) (*domain.Event, error) {
	events, err := s.ByType(ctx, tenantID, t, 1)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

// LastOfTypes returns the newest event of each requested type in one query.
// Types without events are absent from the map.
func (s *EventStore) LastOfTypes(ctx context.Context, tenantID uuid.UUID, types []domain.EventType) (map[domain.EventType]domain.Event, error) {
	var names []string
	for _, t := range types {
		names = append(names, t.Literals()...)
	}
	if len(names) == 0 {
		return map[domain.EventType]domain.Event{}, nil
	}

	ranked := builder().
		Select(eventColumns...).
		Column("ROW_NUMBER() OVER (PARTITION BY event_type ORDER BY occurred_at DESC, id DESC) AS rn").
		From("events").
		Where(sq.Eq{"tenant_id": tenantID, "event_type": names})

	query := builder().
		Select(eventColumns...).
		FromSelect(ranked, "ranked").
		Where(sq.Eq{"rn": 1})

	events, err := s.list(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}

	out := make(map[domain.EventType]domain.Event, len(events))
	for _, ev := range events {
		cur, ok := out[ev.Type]
		if !ok || ev.Timestamp.After(cur.Timestamp) || (ev.Timestamp.Equal(cur.Timestamp) && ev.ID > cur.ID) {
			out[ev.Type] = ev
		}
	}
	return out, nil
}

// InRange returns events overlapping [start, end), oldest first.
func (s *EventStore) InRange(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.Event, error) {
	from, to := toMicros(start), toMicros(end)
	query := selectEvents(tenantID).
		Where(sq.Lt{"occurred_at": to}).
		Where(sq.Or{
			sq.And{sq.Eq{"ended_at": nil}, sq.GtOrEq{"occurred_at": from}},
			sq.Gt{"ended_at": from},
		}).
		OrderBy("occurred_at ASC", "id ASC")
	return s.list(ctx, query, tenantID)
}

// Since returns events at or after from, newest first.
func (s *EventStore) Since(ctx context.Context, tenantID uuid.UUID, from time.Time) ([]domain.Event, error) {
	return s.list(ctx, newestFirst(selectEvents(tenantID).Where(sq.GtOrEq{"occurred_at": toMicros(from)})), tenantID)
}

// Page returns one page of history, newest first, and whether more exist.
func (s *EventStore) Page(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Event, bool, error) {
	query := newestFirst(selectEvents(tenantID)).Offset(uint64(offset)).Limit(uint64(limit + 1))

	events, err := s.list(ctx, query, tenantID)
	if err != nil {
		return nil, false, err
	}
	if len(events) > limit {
		return events[:limit], true, nil
	}
	return events, false, nil
}

// CountByTypeSince counts events at or after from, grouped by normalized type.
func (s *EventStore) CountByTypeSince(ctx context.Context, tenantID uuid.UUID, from time.Time) (domain.Counts, error) {
	rows, err := s.db.QueryContext(ctx, countByTypeSinceSQL, tenantID, toMicros(from))
	if err != nil {
		return nil, mapError(err, "event", tenantID)
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
		counts[domain.ParseEventType(raw)] += n
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "event", tenantID)
	}
	return counts, nil
}

func selectEvents(tenantID uuid.UUID) sq.SelectBuilder {
	return builder().Select(eventColumns...).From("events").Where(sq.Eq{"tenant_id": tenantID})
}

func newestFirst(b sq.SelectBuilder) sq.SelectBuilder {
	return b.OrderBy("occurred_at DESC", "id DESC")
}

func (s *EventStore) list(ctx context.Context, query sq.SelectBuilder, tenantID uuid.UUID) ([]domain.Event, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build events query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "event", tenantID)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			ev         domain.Event
			rawType    string
			details    string
			occurredAt int64
			endedAt    *int64
		)
		if err := rows.Scan(&ev.ID, &ev.TenantID, &ev.UserID, &occurredAt, &rawType, &details, &ev.Summary, &endedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		ev.Timestamp = fromMicros(occurredAt)
		ev.EndedAt = fromMicrosPtr(endedAt)
		ev.Type = domain.ParseEventType(rawType)
		ev.Details = domain.Details{}
		if details != "" {
			if err := json.Unmarshal([]byte(details), &ev.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details of event %d: %w", ev.ID, err)
			}
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "event", tenantID)
	}

	return events, nil
}
