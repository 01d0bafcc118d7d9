package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// DailySummary counts today's events per known type. "Today" starts at
// midnight in the tenant timezone.
func (s *Service) DailySummary(ctx context.Context, tenant *domain.Tenant) (domain.Counts, error) {
	from := domain.DayStart(s.now(), tenant.Location())

	counts, err := s.events.CountByTypeSince(ctx, tenant.ID, from)
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}

	out := domain.Counts{}
	for t, n := range counts {
		if t.IsKnown() {
			out[t] = n
		}
	}
	return out, nil
}

// Last24hStats counts poo, pee and feeding events of the trailing 24 hours.
// Typed events are counted first; only when they yield nothing at all is
// the window re-classified with the legacy summary rule. The two paths
// are never added together.
func (s *Service) Last24hStats(ctx context.Context, tenantID uuid.UUID) (domain.Stats24h, error) {
	events, err := s.events.Since(ctx, tenantID, s.now().Add(-24*time.Hour))
	if err != nil {
		return domain.Stats24h{}, fmt.Errorf("last 24h stats: %w", err)
	}

	var typed domain.Stats24h
	for _, ev := range events {
		switch ev.Type {
		case domain.EventTypePoo:
			typed.Poo++
		case domain.EventTypePee:
			typed.Pee++
		case domain.EventTypeFeed:
			typed.Feeding++
		}
	}
	if !typed.IsZero() {
		return typed, nil
	}

	var legacy domain.Stats24h
	for _, ev := range events {
		c := domain.ClassifyLegacySummary(ev.SummaryText())
		if c.Poo {
			legacy.Poo++
		}
		if c.Pee {
			legacy.Pee++
		}
		if c.Feeding {
			legacy.Feeding++
		}
	}
	return legacy, nil
}

// LastEventsOfInterest finds the newest feeding, poo and pee events in a
// single newest-first pass. Known types classify by type; anything else
// falls back to the legacy summary rule. The scan stops as soon as all
// three are found.
func (s *Service) LastEventsOfInterest(ctx context.Context, tenantID uuid.UUID) (domain.LastEvents, error) {
	var last domain.LastEvents

	for offset := 0; ; offset += scanChunk {
		events, hasNext, err := s.events.Page(ctx, tenantID, offset, scanChunk)
		if err != nil {
			return domain.LastEvents{}, fmt.Errorf("last events of interest: %w", err)
		}

		for i := range events {
			ev := &events[i]
			poo, pee, feed := classify(ev)
			if poo && last.Poo == nil {
				last.Poo = ev
			}
			if pee && last.Pee == nil {
				last.Pee = ev
			}
			if feed && last.Feeding == nil {
				last.Feeding = ev
			}
			if last.Complete() {
				return last, nil
			}
		}

		if !hasNext {
			return last, nil
		}
	}
}

func classify(ev *domain.Event) (poo, pee, feed bool) {
	if ev.Type.IsKnown() {
		return ev.Type == domain.EventTypePoo, ev.Type == domain.EventTypePee, ev.Type == domain.EventTypeFeed
	}
	c := domain.ClassifyLegacySummary(ev.SummaryText())
	return c.Poo, c.Pee, c.Feeding
}

// LastNDaysSummary returns per-day counts for the trailing days (today
// included), oldest first. Days without events are present with empty counts.
func (s *Service) LastNDaysSummary(ctx context.Context, tenant *domain.Tenant, days int) ([]domain.DaySummary, error) {
	if days <= 0 {
		return nil, domain.NewValidationError("days", "must be positive")
	}

	loc := tenant.Location()
	today := domain.DayStart(s.now(), loc).In(loc)
	first := today.AddDate(0, 0, -(days - 1))

	events, err := s.events.Since(ctx, tenant.ID, first)
	if err != nil {
		return nil, fmt.Errorf("last %d days summary: %w", days, err)
	}

	out := make([]domain.DaySummary, days)
	index := make(map[string]int, days)
	for i := range days {
		d := first.AddDate(0, 0, i)
		out[i] = domain.DaySummary{Date: d, Counts: domain.Counts{}}
		index[d.Format(time.DateOnly)] = i
	}

	for _, ev := range events {
		if !ev.Type.IsKnown() {
			continue
		}
		if i, ok := index[ev.Timestamp.In(loc).Format(time.DateOnly)]; ok {
			out[i].Counts[ev.Type]++
		}
	}

	return out, nil
}
