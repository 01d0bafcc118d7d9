package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// MinCalendarDuration keeps point events visible in calendar views.
const MinCalendarDuration = time.Minute

// GetEvents returns the calendar view of [start, end): one entry per event
// with point events stretched to MinCalendarDuration.
func (s *Service) GetEvents(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.CalendarEntry, error) {
	events, err := s.InRange(ctx, tenantID, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CalendarEntry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, toCalendarEntry(ev))
	}
	return entries, nil
}

func toCalendarEntry(ev domain.Event) domain.CalendarEntry {
	end := ev.Timestamp.Add(MinCalendarDuration)
	if ev.EndedAt != nil && ev.EndedAt.Sub(ev.Timestamp) > MinCalendarDuration {
		end = *ev.EndedAt
	}
	return domain.CalendarEntry{
		EventID:     ev.ID,
		Summary:     ev.Describe(),
		Start:       ev.Timestamp,
		End:         end,
		Description: ev.SummaryText(),
	}
}

// History returns one page (0-based) of the event log, newest first.
func (s *Service) History(ctx context.Context, tenantID uuid.UUID, page int) (*domain.HistoryPage, error) {
	if page < 0 {
		page = 0
	}
	events, hasNext, err := s.events.Page(ctx, tenantID, page*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("history page %d: %w", page, err)
	}
	return &domain.HistoryPage{Events: events, Page: page, HasNext: hasNext}, nil
}
