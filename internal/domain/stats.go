package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Counts maps an event type to a number of events.
type Counts map[EventType]int

// Get returns the count for t (zero when absent).
func (c Counts) Get(t EventType) int { return c[t] }

// Total sums all counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Stats24h holds the trailing 24 hour counters shown on status views.
type Stats24h struct {
	Poo     int `json:"poo"`
	Pee     int `json:"pee"`
	Feeding int `json:"feeding"`
}

// IsZero reports whether all counters are zero.
func (s Stats24h) IsZero() bool {
	return s.Poo == 0 && s.Pee == 0 && s.Feeding == 0
}

// LastEvents holds the most recent event of each category of interest.
type LastEvents struct {
	Feeding *Event
	Poo     *Event
	Pee     *Event
}

// Complete reports whether every category has been found.
func (l LastEvents) Complete() bool {
	return l.Feeding != nil && l.Poo != nil && l.Pee != nil
}

// DaySummary is one calendar date's counts.
type DaySummary struct {
	Date   time.Time
	Counts Counts
}

// CalendarEntry is an interval view of one event.
type CalendarEntry struct {
	EventID     int64     `json:"event_id"`
	Summary     string    `json:"summary"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
}

// GrowthPoint is one body measurement.
type GrowthPoint struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
}

// Status is the read projection served to remote status clients.
type Status struct {
	TenantID        uuid.UUID  `json:"tenant_id"`
	BabyName        string     `json:"baby_name,omitempty"`
	LastFeeding     *time.Time `json:"last_feed"`
	LastFeedingSide string     `json:"last_feed_side,omitempty"`
	LastPoo         *time.Time `json:"last_poo"`
	LastPee         *time.Time `json:"last_pee"`
	CountFeeding    int        `json:"count_feed"`
	CountPoo        int        `json:"count_poo"`
	CountPee        int        `json:"count_pee"`
	TimerRunning    bool       `json:"timer_running"`
}

// Legacy summary markers written by the first version of the tracker,
// before events carried a typed classification.
const (
	legacyPoo   = "Cacca"
	legacyPee   = "Pipì"
	legacyMixed = "Misto"
	legacyFeed  = "Poppata"
)

// LegacyClass is the outcome of classifying a legacy summary string.
type LegacyClass struct {
	Poo     bool
	Pee     bool
	Feeding bool
}

// ClassifyLegacySummary applies the substring rule used for records that
// predate typed events. A mixed diaper counts as both poo and pee.
func ClassifyLegacySummary(summary string) LegacyClass {
	mixed := strings.Contains(summary, legacyMixed)
	return LegacyClass{
		Poo:     mixed || strings.Contains(summary, legacyPoo),
		Pee:     mixed || strings.Contains(summary, legacyPee),
		Feeding: strings.Contains(summary, legacyFeed),
	}
}

// ChartPoint is one day of a chart series.
type ChartPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// HistoryPage is one page of the event log, newest first.
type HistoryPage struct {
	Events  []Event
	Page    int
	HasNext bool
}
