package capture

import (
	"context"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// State is the step a conversation is waiting on.
type State int

const (
	StateTypeSelection State = iota
	StateInteractiveTimePicker
	StateDurationSelection
	StateTimeSelection
	StateCustomTimeInput
	StateValueInput
	StateHealthSelection
	StateTimerClassification
	StateImportAwaitFile
	StateProfileName
	StateProfileBirthDate
	StateTerminal
)

var stateNames = [...]string{
	"type_selection",
	"interactive_time_picker",
	"duration_selection",
	"time_selection",
	"custom_time_input",
	"value_input",
	"health_selection",
	"timer_classification",
	"import_await_file",
	"profile_name",
	"profile_birth_date",
	"terminal",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// AwaitsText reports whether the state consumes free-text messages.
func (s State) AwaitsText() bool {
	switch s {
	case StateCustomTimeInput, StateValueInput, StateProfileName, StateProfileBirthDate:
		return true
	}
	return false
}

// Key identifies one conversation: a user inside a chat.
type Key struct {
	ChatID int64
	UserID int64
}

// Draft is the event being assembled across steps.
type Draft struct {
	Type    domain.EventType `json:"type"`
	Details domain.Details   `json:"details,omitempty"`
	// Start is the confirmed start of an interval event.
	Start *time.Time `json:"start,omitempty"`
}

// Timer is a running live timer.
type Timer struct {
	Kind      domain.EventType `json:"kind"`
	StartedAt time.Time        `json:"started_at"`
}

// Session is the per-conversation capture state. Only the fields the
// current State needs are set.
type Session struct {
	State State  `json:"state"`
	Draft *Draft `json:"draft,omitempty"`
	// Picker is the candidate start shown by the interactive time picker.
	Picker      *time.Time `json:"picker,omitempty"`
	Timer       *Timer     `json:"timer,omitempty"`
	ProfileName string     `json:"profile_name,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// idle reports whether the session holds nothing worth keeping.
func (s *Session) idle() bool {
	return s.Timer == nil && (s.State == StateTerminal || s.State == StateTypeSelection) && s.Draft == nil
}

// accepts reports whether a button of the step want may act on s. With
// no capture in progress the step runs and falls back to the type menu
// itself when its draft is missing.
func (s *Session) accepts(want State) bool {
	switch s.State {
	case want, StateTypeSelection, StateTerminal:
		return true
	}
	return false
}

// reset drops the capture in progress and keeps a running timer.
func (s *Session) reset(state State) {
	s.State = state
	s.Draft = nil
	s.Picker = nil
	s.ProfileName = ""
}

// SessionStore persists sessions with an inactivity TTL. Get returns
// nil, nil for a missing or expired session.
type SessionStore interface {
	Get(ctx context.Context, key Key) (*Session, error)
	Put(ctx context.Context, key Key, s *Session, ttl time.Duration) error
	Delete(ctx context.Context, key Key) error
}
