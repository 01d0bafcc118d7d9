package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// maxGrowthPoints bounds each growth series.
const maxGrowthPoints = 500

// Status builds the read projection served to remote status clients:
// last feeding (with side), last diapers and today's counts.
func (s *Service) Status(ctx context.Context, tenant *domain.Tenant) (*domain.Status, error) {
	last, err := s.LastEventsOfInterest(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	today, err := s.DailySummary(ctx, tenant)
	if err != nil {
		return nil, err
	}

	st := &domain.Status{
		TenantID:     tenant.ID,
		CountFeeding: today.Get(domain.EventTypeFeed),
		CountPoo:     today.Get(domain.EventTypePoo),
		CountPee:     today.Get(domain.EventTypePee),
	}
	if last.Feeding != nil {
		st.LastFeeding = &last.Feeding.Timestamp
		st.LastFeedingSide, _ = last.Feeding.Details.String(domain.DetailSource)
	}
	if last.Poo != nil {
		st.LastPoo = &last.Poo.Timestamp
	}
	if last.Pee != nil {
		st.LastPee = &last.Pee.Timestamp
	}

	if s.babies != nil {
		baby, err := s.babies.Get(ctx, tenant.ID)
		switch {
		case err == nil:
			st.BabyName = baby.Name
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("status baby profile: %w", err)
		}
	}

	if s.timer != nil {
		active, err := s.timer.Active(ctx)
		if err != nil {
			// The toggle is a best-effort side channel; the projection is still valid.
			s.log.WarnContext(ctx, "timer state unavailable", slog.String("error", err.Error()))
		}
		st.TimerRunning = active
	}

	return st, nil
}

// FeedingChart returns daily feeding counts for the trailing days, oldest first.
func (s *Service) FeedingChart(ctx context.Context, tenant *domain.Tenant, days int) ([]domain.ChartPoint, error) {
	summary, err := s.LastNDaysSummary(ctx, tenant, days)
	if err != nil {
		return nil, err
	}

	points := make([]domain.ChartPoint, len(summary))
	for i, d := range summary {
		points[i] = domain.ChartPoint{
			Date:  d.Date.Format(time.DateOnly),
			Count: d.Counts.Get(domain.EventTypeFeed),
		}
	}
	return points, nil
}

// GrowthSeries returns all weight, height and head measurements, oldest first.
// Events without a numeric value are skipped.
func (s *Service) GrowthSeries(ctx context.Context, tenantID uuid.UUID) ([]domain.GrowthPoint, error) {
	var points []domain.GrowthPoint

	for _, t := range []domain.EventType{domain.EventTypeWeight, domain.EventTypeHeight, domain.EventTypeHead} {
		events, err := s.events.ByType(ctx, tenantID, t, maxGrowthPoints)
		if err != nil {
			return nil, fmt.Errorf("growth series %s: %w", t, err)
		}
		for _, ev := range events {
			v, ok := ev.Details.Float(domain.DetailValue)
			if !ok {
				continue
			}
			unit, _ := ev.Details.String(domain.DetailUnit)
			if unit == "" {
				unit = t.Unit()
			}
			points = append(points, domain.GrowthPoint{Type: t, Timestamp: ev.Timestamp, Value: v, Unit: unit})
		}
	}

	slices.SortStableFunc(points, func(a, b domain.GrowthPoint) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return points, nil
}
