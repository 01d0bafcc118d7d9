package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what an Event records. Known values are the
// constants below; any other value is kept verbatim and reported as
// unrecognized so that raw history never loses data.
type EventType string

const (
	EventTypePoo    EventType = "diaper-poo"
	EventTypePee    EventType = "diaper-pee"
	EventTypeFeed   EventType = "feeding"
	EventTypeSleep  EventType = "sleep"
	EventTypeWeight EventType = "growth-weight"
	EventTypeHeight EventType = "growth-height"
	EventTypeHead   EventType = "growth-head"
	EventTypeHealth EventType = "health"
)

// KnownEventTypes lists every recognized type in display order.
var KnownEventTypes = []EventType{
	EventTypePoo, EventTypePee, EventTypeFeed, EventTypeSleep,
	EventTypeWeight, EventTypeHeight, EventTypeHead, EventTypeHealth,
}

// legacyTypeAliases maps type literals written by earlier versions of the
// tracker to their current form.
var legacyTypeAliases = map[string]EventType{
	"cacca":               EventTypePoo,
	"pipi":                EventTypePee,
	"allattamento":        EventTypeFeed,
	"misurazione_peso":    EventTypeWeight,
	"misurazione_altezza": EventTypeHeight,
}

// ParseEventType normalizes a stored or user-supplied type literal.
// Unknown literals are returned unchanged; check them with IsKnown.
func ParseEventType(raw string) EventType {
	s := strings.TrimSpace(raw)
	if t, ok := legacyTypeAliases[strings.ToLower(s)]; ok {
		return t
	}
	return EventType(s)
}

func (t EventType) String() string { return string(t) }

// Literals returns every stored spelling of t: the current literal first,
// followed by legacy aliases in sorted order.
func (t EventType) Literals() []string {
	var aliases []string
	for alias, target := range legacyTypeAliases {
		if target == t {
			aliases = append(aliases, alias)
		}
	}
	sort.Strings(aliases)
	return append([]string{string(t)}, aliases...)
}

// IsKnown reports whether t is one of KnownEventTypes.
func (t EventType) IsKnown() bool {
	switch t {
	case EventTypePoo, EventTypePee, EventTypeFeed, EventTypeSleep,
		EventTypeWeight, EventTypeHeight, EventTypeHead, EventTypeHealth:
		return true
	}
	return false
}

// IsGrowth reports whether t is a body measurement.
func (t EventType) IsGrowth() bool {
	return t == EventTypeWeight || t == EventTypeHeight || t == EventTypeHead
}

// Label returns the short display label used by chat and calendar views.
func (t EventType) Label() string {
	switch t {
	case EventTypePoo:
		return "💩 Cacca"
	case EventTypePee:
		return "💧 Pipì"
	case EventTypeFeed:
		return "🍼 Poppata"
	case EventTypeSleep:
		return "😴 Sonno"
	case EventTypeWeight:
		return "⚖️ Peso"
	case EventTypeHeight:
		return "📏 Altezza"
	case EventTypeHead:
		return "📐 Circonferenza cranica"
	case EventTypeHealth:
		return "🩺 Salute"
	}
	return "⚪️ " + string(t)
}

// Unit returns the measurement unit stored with growth values.
func (t EventType) Unit() string {
	switch t {
	case EventTypeWeight:
		return "g"
	case EventTypeHeight, EventTypeHead:
		return "cm"
	}
	return ""
}

// Detail keys written by the capture flow and the importer.
const (
	DetailSource          = "source"
	DetailDurationSeconds = "duration_seconds"
	DetailDurationText    = "duration_text"
	DetailQuantityML      = "quantity_ml"
	DetailValue           = "value"
	DetailUnit            = "unit"
	DetailKind            = "kind"
	DetailOrigin          = "origin"
)

// Feeding sources.
const (
	SourceLeft   = "left"
	SourceRight  = "right"
	SourceBottle = "bottle"
	SourceBoth   = "both"
)

// Health event kinds.
const (
	HealthTemperature = "temperature"
	HealthMedicine    = "medicine"
	HealthVaccine     = "vaccine"
	HealthNote        = "note"
)

// Details is the schema-flexible payload of an Event.
type Details map[string]any

// String returns the string value stored under key.
func (d Details) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

// Float returns a numeric value stored under key. JSON decoding yields
// float64, values built in code may be any integer type.
func (d Details) Float(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	}
	return 0, false
}

// Duration returns details.duration_seconds as a time.Duration.
func (d Details) Duration() (time.Duration, bool) {
	secs, ok := d.Float(DetailDurationSeconds)
	if !ok || secs <= 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Event is one immutable logged occurrence.
type Event struct {
	ID        int64
	TenantID  uuid.UUID
	UserID    int64
	Timestamp time.Time
	Type      EventType
	Details   Details
	// Summary is the optional free-text description. Records written before
	// typed events existed carry their classification only here.
	Summary *string
	// EndedAt is set for interval events (timestamp + duration).
	EndedAt *time.Time
}

// IsInterval reports whether the event spans a time range.
func (e Event) IsInterval() bool {
	return e.EndedAt != nil && e.EndedAt.After(e.Timestamp)
}

// Overlaps reports whether the event falls in the half-open range [start, end).
func (e Event) Overlaps(start, end time.Time) bool {
	if e.IsInterval() {
		return e.Timestamp.Before(end) && e.EndedAt.After(start)
	}
	return !e.Timestamp.Before(start) && e.Timestamp.Before(end)
}

// SummaryText returns Summary or an empty string.
func (e Event) SummaryText() string {
	if e.Summary == nil {
		return ""
	}
	return *e.Summary
}

// EndFromDetails derives the end of an interval event from its duration.
// Returns nil for point events.
func EndFromDetails(ts time.Time, d Details) *time.Time {
	dur, ok := d.Duration()
	if !ok {
		return nil
	}
	end := ts.Add(dur)
	return &end
}

// NewEvent carries the caller-supplied fields of an append.
type NewEvent struct {
	TenantID  uuid.UUID
	UserID    int64
	Type      EventType
	Details   Details
	Summary   *string
	Timestamp *time.Time
}

// Describe renders the event as a short Italian line: the type label
// followed by the interesting details, e.g. "🍼 Poppata (sinistro, 15 min)".
func (e Event) Describe() string {
	var parts []string

	switch e.Type {
	case EventTypeFeed:
		if src, ok := e.Details.String(DetailSource); ok {
			parts = append(parts, SourceLabel(src))
		}
		if ml, ok := e.Details.Float(DetailQuantityML); ok {
			parts = append(parts, fmt.Sprintf("%g ml", ml))
		}
	case EventTypeHealth:
		if kind, ok := e.Details.String(DetailKind); ok {
			parts = append(parts, HealthKindLabel(kind))
		}
	}

	if v, ok := e.Details.Float(DetailValue); ok {
		unit, _ := e.Details.String(DetailUnit)
		if unit == "" {
			unit = e.Type.Unit()
		}
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%g %s", v, unit)))
	}
	if txt, ok := e.Details.String(DetailDurationText); ok && txt != "" {
		parts = append(parts, txt)
	} else if d, ok := e.Details.Duration(); ok {
		parts = append(parts, fmt.Sprintf("%d min", int(d.Minutes())))
	}

	label := e.Type.Label()
	if !e.Type.IsKnown() && e.Summary != nil {
		label = *e.Summary
	}
	if len(parts) == 0 {
		return label
	}
	return label + " (" + strings.Join(parts, ", ") + ")"
}

// SourceLabel returns the Italian label of a feeding source.
func SourceLabel(src string) string {
	switch src {
	case SourceLeft:
		return "sinistro"
	case SourceRight:
		return "destro"
	case SourceBottle:
		return "biberon"
	case SourceBoth:
		return "entrambi"
	}
	return src
}

// HealthKindLabel returns the Italian label of a health subtype.
func HealthKindLabel(kind string) string {
	switch kind {
	case HealthTemperature:
		return "🌡️ Febbre"
	case HealthMedicine:
		return "💊 Medicina"
	case HealthVaccine:
		return "💉 Vaccino"
	case HealthNote:
		return "📝 Nota"
	}
	return kind
}
