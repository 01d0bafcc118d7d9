package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
	"github.com/ntotao/baby-tracker/internal/transport/rest/dataloader"
	"github.com/ntotao/baby-tracker/pkg/ctxutil"
)

const (
	// maxCalendarSpan bounds a single calendar query.
	maxCalendarSpan = 92 * 24 * time.Hour
	maxChartDays    = 90
	maxBodyBytes    = 64 << 10
)

type tenantLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
}

type eventAPI interface {
	Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error)
	Status(ctx context.Context, tenant *domain.Tenant) (*domain.Status, error)
	GetEvents(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]domain.CalendarEntry, error)
	FeedingChart(ctx context.Context, tenant *domain.Tenant, days int) ([]domain.ChartPoint, error)
	GrowthSeries(ctx context.Context, tenantID uuid.UUID) ([]domain.GrowthPoint, error)
}

// APIHandler serves the tenant-scoped /api/v1 endpoints. Every route
// expects middleware.RequireTenant in front of it.
type APIHandler struct {
	tenants   tenantLookup
	events    eventAPI
	chartDays int
	log       *slog.Logger
}

// NewAPIHandler creates an APIHandler. chartDays is the default window of
// the feeding chart.
func NewAPIHandler(log *slog.Logger, tenants tenantLookup, events eventAPI, chartDays int) *APIHandler {
	if chartDays <= 0 {
		chartDays = 7
	}
	return &APIHandler{
		tenants:   tenants,
		events:    events,
		chartDays: chartDays,
		log:       log.With("handler", "api"),
	}
}

// Status returns the status projection of the caller's tenant.
// GET /api/v1/status?telegram_id=123
//
// telegram_id is optional; when given it must be a member of the tenant.
func (h *APIHandler) Status(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tenant(w, r)
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("telegram_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid telegram_id")
			return
		}
		if !t.IsMember(id) {
			writeError(w, http.StatusForbidden, "user is not a member of this tracker")
			return
		}
	}

	st, err := h.events.Status(r.Context(), t)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type appendRequest struct {
	Type      string         `json:"type"`
	Details   map[string]any `json:"details"`
	Summary   *string        `json:"summary"`
	Timestamp *time.Time     `json:"timestamp"`
}

type eventResponse struct {
	ID        int64            `json:"id"`
	Type      domain.EventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	EndedAt   *time.Time       `json:"ended_at,omitempty"`
	Details   domain.Details   `json:"details,omitempty"`
	Summary   *string          `json:"summary,omitempty"`
	Text      string           `json:"text"`
}

// AppendEvent records an event for the caller's tenant.
// POST /api/v1/events
func (h *APIHandler) AppendEvent(w http.ResponseWriter, r *http.Request) {
	tenantID, _ := ctxutil.TenantIDFromCtx(r.Context())
	userID, _ := ctxutil.UserIDFromCtx(r.Context())

	var req appendRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev, err := h.events.Append(r.Context(), domain.NewEvent{
		TenantID:  tenantID,
		UserID:    userID,
		Type:      domain.ParseEventType(req.Type),
		Details:   req.Details,
		Summary:   req.Summary,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, eventResponse{
		ID:        ev.ID,
		Type:      ev.Type,
		Timestamp: ev.Timestamp,
		EndedAt:   ev.EndedAt,
		Details:   ev.Details,
		Summary:   ev.Summary,
		Text:      ev.Describe(),
	})
}

// Calendar returns calendar entries overlapping [start, end).
// GET /api/v1/calendar?start=2026-01-01&end=2026-01-08
//
// Bounds are RFC 3339 timestamps or dates; dates are midnights in the
// tenant's timezone.
func (h *APIHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	start, err := parseBound(q.Get("start"), t.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start: "+err.Error())
		return
	}
	end, err := parseBound(q.Get("end"), t.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end: "+err.Error())
		return
	}
	if end.Sub(start) > maxCalendarSpan {
		writeError(w, http.StatusBadRequest, "range too large")
		return
	}

	entries, err := h.events.GetEvents(r.Context(), t.ID, start, end)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func parseBound(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("required")
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	d, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return time.Time{}, errors.New("expected RFC 3339 timestamp or YYYY-MM-DD date")
	}
	return d, nil
}

type webappData struct {
	Feeding []domain.ChartPoint             `json:"feeding"`
	Growth  []domain.GrowthPoint            `json:"growth"`
	Latest  map[domain.EventType]*eventView `json:"latest"`
}

type eventView struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// latestTypes are the events whose newest occurrence the webapp shows.
var latestTypes = []domain.EventType{
	domain.EventTypeFeed, domain.EventTypeSleep,
	domain.EventTypeWeight, domain.EventTypeHeight, domain.EventTypeHead,
}

// WebAppData returns the chart data of the webapp.
// GET /api/v1/webapp/data?days=14
func (h *APIHandler) WebAppData(w http.ResponseWriter, r *http.Request) {
	t, ok := h.tenant(w, r)
	if !ok {
		return
	}

	days := h.chartDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxChartDays {
			writeError(w, http.StatusBadRequest, "days must be between 1 and "+strconv.Itoa(maxChartDays))
			return
		}
		days = n
	}

	ctx := r.Context()
	feeding, err := h.events.FeedingChart(ctx, t, days)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	growth, err := h.events.GrowthSeries(ctx, t.ID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	loaders := dataloader.FromContext(ctx)
	data := webappData{Feeding: feeding, Growth: growth, Latest: make(map[domain.EventType]*eventView, len(latestTypes))}
	thunks := make([]func() (*domain.Event, error), len(latestTypes))
	for i, typ := range latestTypes {
		thunks[i] = loaders.LastEvent.Load(ctx, dataloader.Key{TenantID: t.ID, Type: typ})
	}
	for i, typ := range latestTypes {
		ev, err := thunks[i]()
		if err != nil {
			h.handleError(w, r, err)
			return
		}
		if ev != nil {
			data.Latest[typ] = &eventView{Timestamp: ev.Timestamp, Text: ev.Describe()}
		}
	}

	if data.Growth == nil {
		data.Growth = []domain.GrowthPoint{}
	}
	writeJSON(w, http.StatusOK, data)
}

// tenant loads the tenant authenticated by the bearer token.
func (h *APIHandler) tenant(w http.ResponseWriter, r *http.Request) (*domain.Tenant, bool) {
	id, ok := ctxutil.TenantIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	t, err := h.tenants.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return t, true
}

func (h *APIHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, validationResponse{Error: "validation failed", Fields: fieldErrors(ve)})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTenantNotFound):
		// The token outlived its tenant.
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.log.ErrorContext(r.Context(), "storage unavailable", slog.String("error", err.Error()))
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		h.log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func fieldErrors(ve *domain.ValidationError) map[string]string {
	out := make(map[string]string, len(ve.Fields))
	for _, fe := range ve.Fields {
		out[strings.ToLower(fe.Field)] = fe.Message
	}
	return out
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
