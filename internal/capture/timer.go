package capture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

// StartTimer starts a live feeding or sleep timer for the conversation.
func (m *Machine) StartTimer(ctx context.Context, in Input, kind domain.EventType) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		return m.startTimer(ctx, in, s, kind)
	})
}

// StopTimer stops the running timer. Sleep is committed at once,
// feeding asks for the side first.
func (m *Machine) StopTimer(ctx context.Context, in Input) (Prompt, error) {
	return m.run(ctx, in, func(s *Session) (Prompt, error) {
		return m.stopTimer(ctx, in, s)
	})
}

// Running returns the conversation's live timer, or nil.
func (m *Machine) Running(ctx context.Context, key Key) (*Timer, error) {
	s, err := m.sessions.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return nil, nil
	}
	return s.Timer, nil
}

func (m *Machine) timerOption(ctx context.Context, in Input, s *Session, action string) (Prompt, error) {
	switch action {
	case "start_feed":
		return m.startTimer(ctx, in, s, domain.EventTypeFeed)
	case "start_sleep":
		return m.startTimer(ctx, in, s, domain.EventTypeSleep)
	case "stop":
		return m.stopTimer(ctx, in, s)
	}
	return Prompt{}, fmt.Errorf("timer action %q: %w", action, domain.ErrValidation)
}

func (m *Machine) startTimer(ctx context.Context, in Input, s *Session, kind domain.EventType) (Prompt, error) {
	if kind != domain.EventTypeFeed && kind != domain.EventTypeSleep {
		return Prompt{}, fmt.Errorf("timer kind %q: %w", kind, domain.ErrValidation)
	}

	loc := in.Tenant.Location()
	if s.Timer != nil {
		return Prompt{
			Text:    fmt.Sprintf("⏱️ %s già in corso dalle %s.", s.Timer.Kind.Label(), clock(s.Timer.StartedAt, loc)),
			Buttons: [][]Button{{stopButton(s.Timer, loc)}},
		}, nil
	}

	s.reset(StateTerminal)
	s.Timer = &Timer{Kind: kind, StartedAt: m.now()}
	m.toggle(ctx, true)

	return Prompt{
		Text:    fmt.Sprintf("▶️ %s avviato! Premi Stop quando finito.", kind.Label()),
		Buttons: [][]Button{{stopButton(s.Timer, loc)}},
	}, nil
}

func (m *Machine) stopTimer(ctx context.Context, in Input, s *Session) (Prompt, error) {
	if s.Timer == nil {
		return Prompt{Text: "Nessun timer attivo."}, nil
	}

	t := *s.Timer
	elapsed := m.now().Sub(t.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	start := t.StartedAt
	draft := &Draft{Type: t.Kind, Start: &start}
	setDuration(draft, elapsed.Truncate(time.Second))

	if t.Kind == domain.EventTypeSleep {
		s.Draft = draft
		p, err := m.commit(ctx, in, s, start)
		if err != nil {
			s.Draft = nil
			return Prompt{}, err
		}
		s.Timer = nil
		m.toggle(ctx, false)
		return p, nil
	}

	s.reset(StateTimerClassification)
	s.Timer = nil
	s.Draft = draft
	m.toggle(ctx, false)
	return sideMenu(int(elapsed.Minutes())), nil
}

// toggle mirrors the timer on the durable flag. A failing flag is logged
// and never fails the capture.
func (m *Machine) toggle(ctx context.Context, active bool) {
	if m.timer == nil {
		return
	}
	if err := m.timer.SetActive(ctx, active); err != nil {
		m.log.WarnContext(ctx, "timer toggle failed", slog.Bool("active", active), slog.String("error", err.Error()))
	}
}
