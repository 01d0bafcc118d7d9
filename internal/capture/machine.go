// Package capture implements the multi-step dialog that assembles an
// event before it is committed to the tenant log. It is transport
// agnostic: callers feed it options, text and documents and render the
// returned Prompt.
package capture

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ntotao/baby-tracker/internal/domain"
	"github.com/ntotao/baby-tracker/internal/service/importer"
)

// Option data understood by Machine.Option. Every value starts with Prefix.
const (
	Prefix    = "cap:"
	OptCancel = Prefix + "cancel"

	optType   = Prefix + "type:"
	optPick   = Prefix + "pick:"
	optDur    = Prefix + "dur:"
	optTime   = Prefix + "time:"
	optHealth = Prefix + "health:"
	optSide   = Prefix + "side:"
	optTimer  = Prefix + "timer:"
)

// Feeding picker variants.
const (
	PickerInteractive = "interactive"
	PickerQuick       = "quick"
)

// Button is one selectable option of a prompt.
type Button struct {
	Label string
	Data  string
}

// Prompt is what the machine wants shown after handling an input.
type Prompt struct {
	Text    string
	Buttons [][]Button
	// Err is a user-correctable problem already explained in Text
	// (ErrInvalidFormat, ErrInvalidNumber, ErrSessionLost, ErrValidation).
	Err error
	// Committed lists the events appended while handling the input.
	Committed []domain.Event
}

// Config tunes the machine.
type Config struct {
	TTL      time.Duration
	TimerTTL time.Duration
	Picker   string
}

// Input identifies who is talking and on behalf of which tenant.
type Input struct {
	Tenant *domain.Tenant
	ChatID int64
	UserID int64
}

func (in Input) key() Key { return Key{ChatID: in.ChatID, UserID: in.UserID} }

type eventAppender interface {
	Append(ctx context.Context, in domain.NewEvent) (*domain.Event, error)
}

type timerToggle interface {
	SetActive(ctx context.Context, active bool) error
}

type fileImporter interface {
	Import(ctx context.Context, tenant *domain.Tenant, userID int64, r io.Reader) (*importer.Result, error)
}

type profileSaver interface {
	Save(ctx context.Context, tenantID uuid.UUID, name string, birthDate *time.Time) (*domain.Baby, error)
}

// Machine drives capture sessions.
type Machine struct {
	cfg      Config
	sessions SessionStore
	events   eventAppender
	timer    timerToggle
	imports  fileImporter
	profiles profileSaver
	log      *slog.Logger
	now      func() time.Time
}

// NewMachine creates a capture machine.
func NewMachine(
	log *slog.Logger,
	cfg Config,
	sessions SessionStore,
	events eventAppender,
	timer timerToggle,
	imports fileImporter,
	profiles profileSaver,
) *Machine {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.TimerTTL < cfg.TTL {
		cfg.TimerTTL = 12 * time.Hour
	}
	if cfg.Picker == "" {
		cfg.Picker = PickerInteractive
	}
	return &Machine{
		cfg:      cfg,
		sessions: sessions,
		events:   events,
		timer:    timer,
		imports:  imports,
		profiles: profiles,
		log:      log.With("service", "capture"),
		now:      time.Now,
	}
}

// IsOption reports whether data belongs to the capture machine.
func IsOption(data string) bool { return strings.HasPrefix(data, Prefix) }

// Menu starts a new capture at TypeSelection. A running timer survives.
func (m *Machine) Menu(ctx context.Context, in Input) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		s.reset(StateTypeSelection)
		return typeMenu(s, in.Tenant.Location()), nil
	})
}

// Cancel abandons the capture in progress.
func (m *Machine) Cancel(ctx context.Context, in Input) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		s.reset(StateTerminal)
		return Prompt{Text: "Operazione annullata."}, nil
	})
}

// BeginImport waits for a file to import.
func (m *Machine) BeginImport(ctx context.Context, in Input) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		s.reset(StateImportAwaitFile)
		return Prompt{Text: importHelp}, nil
	})
}

// BeginProfile starts the baby profile dialog.
func (m *Machine) BeginProfile(ctx context.Context, in Input) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		s.reset(StateProfileName)
		return Prompt{Text: "Come si chiama?"}, nil
	})
}

// Option handles a selected button. Step buttons are accepted only in the
// state that offered them.
func (m *Machine) Option(ctx context.Context, in Input, data string) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		if data == OptCancel {
			s.reset(StateTerminal)
			return Prompt{Text: "Annullato."}, nil
		}
		if strings.HasPrefix(data, optType) {
			return m.chooseType(ctx, in, s, strings.TrimPrefix(data, optType))
		}
		if strings.HasPrefix(data, optTimer) {
			return m.timerOption(ctx, in, s, strings.TrimPrefix(data, optTimer))
		}

		for _, st := range steps {
			arg, ok := strings.CutPrefix(data, st.prefix)
			if !ok {
				continue
			}
			if !s.accepts(st.state) {
				return Prompt{}, fmt.Errorf("option %q in state %s: %w", data, s.State, domain.ErrValidation)
			}
			return st.handle(m, ctx, in, s, arg)
		}
		return Prompt{}, fmt.Errorf("option %q: %w", data, domain.ErrValidation)
	})
}

type stepHandler func(m *Machine, ctx context.Context, in Input, s *Session, arg string) (Prompt, error)

// steps maps each step button to the state that shows it.
var steps = []struct {
	prefix string
	state  State
	handle stepHandler
}{
	{optPick, StateInteractiveTimePicker, func(m *Machine, _ context.Context, in Input, s *Session, arg string) (Prompt, error) {
		return m.pick(in, s, arg)
	}},
	{optDur, StateDurationSelection, (*Machine).duration},
	{optTime, StateTimeSelection, (*Machine).timeChoice},
	{optHealth, StateHealthSelection, func(m *Machine, _ context.Context, _ Input, s *Session, arg string) (Prompt, error) {
		return m.health(s, arg)
	}},
	{optSide, StateTimerClassification, (*Machine).classify},
}

// Text handles a free-text message. handled is false when the session
// is not waiting for text.
func (m *Machine) Text(ctx context.Context, in Input, text string) (p Prompt, handled bool, err error) {
	p, err = m.run(ctx, in, func(s *Session) (Prompt, error) {
		if !s.State.AwaitsText() {
			return Prompt{}, nil
		}
		handled = true
		return m.text(ctx, in, s, strings.TrimSpace(text))
	})
	return p, handled, err
}

// Document handles an uploaded file. handled is false when no import
// is pending.
func (m *Machine) Document(ctx context.Context, in Input, name string, r io.Reader) (p Prompt, handled bool, err error) {
	p, err = m.run(ctx, in, func(s *Session) (Prompt, error) {
		if s.State != StateImportAwaitFile {
			return Prompt{}, nil
		}
		handled = true
		if !importer.AcceptsFile(name) {
			return Prompt{Text: "⚠️ Per favore invia un file .csv o .txt.", Err: domain.ErrInvalidFormat}, nil
		}

		s.reset(StateTerminal)
		res, err := m.imports.Import(ctx, in.Tenant, in.UserID, r)
		if err != nil {
			return Prompt{}, fmt.Errorf("import %s: %w", name, err)
		}
		return Prompt{Text: res.Report()}, nil
	})
	return p, handled, err
}

// run loads the session, applies fn and persists the result. The session
// is not written back when fn fails.
func (m *Machine) run(ctx context.Context, in Input, fn func(s *Session) (Prompt, error)) (Prompt, error) {
	key := in.key()

	s, err := m.sessions.Get(ctx, key)
	if err != nil {
		return Prompt{}, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		s = &Session{State: StateTypeSelection}
	}
	before := s.State

	p, err := fn(s)
	if err != nil {
		return Prompt{}, err
	}

	if err := m.save(ctx, key, s); err != nil {
		return Prompt{}, err
	}

	if before != s.State {
		m.log.DebugContext(ctx, "capture transition",
			slog.Int64("chat_id", in.ChatID),
			slog.String("from", before.String()),
			slog.String("to", s.State.String()),
		)
	}
	return p, nil
}

func (m *Machine) save(ctx context.Context, key Key, s *Session) error {
	if s.idle() {
		if err := m.sessions.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	}

	s.UpdatedAt = m.now()
	ttl := m.cfg.TTL
	if s.Timer != nil {
		ttl = m.cfg.TimerTTL
	}
	if err := m.sessions.Put(ctx, key, s, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// commit appends the draft at ts and ends the capture.
func (m *Machine) commit(ctx context.Context, in Input, s *Session, ts time.Time) (Prompt, error) {
	d := s.Draft
	ev, err := m.events.Append(ctx, domain.NewEvent{
		TenantID:  in.Tenant.ID,
		UserID:    in.UserID,
		Type:      d.Type,
		Details:   d.Details,
		Timestamp: &ts,
	})
	if err != nil {
		return Prompt{}, fmt.Errorf("commit %s: %w", d.Type, err)
	}

	s.reset(StateTerminal)
	return Prompt{
		Text:      fmt.Sprintf("✅ %s salvato per le %s!", ev.Describe(), clock(ts, in.Tenant.Location())),
		Committed: []domain.Event{*ev},
	}, nil
}

// lost restarts at TypeSelection when a step finds its prior state gone.
func lost(s *Session, loc *time.Location) Prompt {
	s.reset(StateTypeSelection)
	p := typeMenu(s, loc)
	p.Text = "⚠️ Sessione scaduta, ricominciamo.\n\n" + p.Text
	p.Err = domain.ErrSessionLost
	return p
}
