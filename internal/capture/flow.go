package capture

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
	"github.com/ntotao/baby-tracker/internal/service/profile"
)

// Duration presets offered after the interactive picker, in minutes.
var durationPresets = []int{5, 10, 15, 20, 30, 45}

// Relative choices offered by TimeSelection, in minutes ago.
var timeAgoChoices = []int{15, 30, 60}

func (m *Machine) chooseType(ctx context.Context, in Input, s *Session, choice string) (Prompt, error) {
	loc := in.Tenant.Location()

	switch choice {
	case "poo", "pee", "both":
		return m.logInstant(ctx, in, s, choice)

	case "feed_left", "feed_right":
		src := domain.SourceLeft
		if choice == "feed_right" {
			src = domain.SourceRight
		}
		s.reset(StateTypeSelection)
		s.Draft = &Draft{Type: domain.EventTypeFeed, Details: domain.Details{domain.DetailSource: src}}
		if m.cfg.Picker == PickerQuick {
			s.State = StateTimeSelection
			return timePrompt(s.Draft), nil
		}
		start := roundDown(m.now(), loc)
		s.Picker = &start
		s.State = StateInteractiveTimePicker
		return pickerPrompt(s, m.now(), loc), nil

	case "feed_bottle":
		s.reset(StateTimeSelection)
		s.Draft = &Draft{Type: domain.EventTypeFeed, Details: domain.Details{domain.DetailSource: domain.SourceBottle}}
		return timePrompt(s.Draft), nil

	case "sleep":
		s.reset(StateTimeSelection)
		s.Draft = &Draft{Type: domain.EventTypeSleep, Details: domain.Details{}}
		return timePrompt(s.Draft), nil

	case "weight", "height", "head":
		t := map[string]domain.EventType{
			"weight": domain.EventTypeWeight,
			"height": domain.EventTypeHeight,
			"head":   domain.EventTypeHead,
		}[choice]
		s.reset(StateValueInput)
		s.Draft = &Draft{Type: t, Details: domain.Details{domain.DetailUnit: t.Unit()}}
		return Prompt{Text: valueQuestion(s.Draft), Buttons: cancelRow()}, nil

	case "health":
		s.reset(StateHealthSelection)
		return healthMenu(), nil
	}

	return Prompt{}, fmt.Errorf("event choice %q: %w", choice, domain.ErrValidation)
}

// logInstant commits diaper events without further questions.
func (m *Machine) logInstant(ctx context.Context, in Input, s *Session, choice string) (Prompt, error) {
	var types []domain.EventType
	switch choice {
	case "poo":
		types = []domain.EventType{domain.EventTypePoo}
	case "pee":
		types = []domain.EventType{domain.EventTypePee}
	default:
		types = []domain.EventType{domain.EventTypePoo, domain.EventTypePee}
	}

	now := m.now()
	committed := make([]domain.Event, 0, len(types))
	labels := make([]string, 0, len(types))
	for _, t := range types {
		ev, err := m.events.Append(ctx, domain.NewEvent{
			TenantID:  in.Tenant.ID,
			UserID:    in.UserID,
			Type:      t,
			Timestamp: &now,
		})
		if err != nil {
			return Prompt{}, fmt.Errorf("log %s: %w", t, err)
		}
		committed = append(committed, *ev)
		labels = append(labels, t.Label())
	}

	s.reset(StateTerminal)
	text := "Registrato: " + labels[0]
	if len(labels) > 1 {
		text += " & " + labels[1]
	}
	return Prompt{Text: text + "!", Committed: committed}, nil
}

func (m *Machine) pick(in Input, s *Session, action string) (Prompt, error) {
	loc := in.Tenant.Location()
	now := m.now()

	if s.Draft == nil {
		return lost(s, loc), nil
	}
	if s.Picker == nil {
		start := roundDown(now, loc)
		s.Picker = &start
	}

	t := *s.Picker
	switch action {
	case "h+":
		t = t.Add(time.Hour)
	case "h-":
		t = t.Add(-time.Hour)
	case "m+":
		t = t.Add(10 * time.Minute)
	case "m-":
		t = t.Add(-10 * time.Minute)
	case "day":
		t = toggleDay(t, now, loc)
	case "ok":
		s.Draft.Start = &t
		s.Picker = nil
		s.State = StateDurationSelection
		return durationPrompt(t, loc), nil
	case "noop":
	default:
		return Prompt{}, fmt.Errorf("picker action %q: %w", action, domain.ErrValidation)
	}

	s.Picker = &t
	s.State = StateInteractiveTimePicker
	return pickerPrompt(s, now, loc), nil
}

func (m *Machine) duration(ctx context.Context, in Input, s *Session, arg string) (Prompt, error) {
	mins, err := strconv.Atoi(arg)
	if err != nil || mins <= 0 {
		return Prompt{}, fmt.Errorf("duration %q: %w", arg, domain.ErrValidation)
	}
	if s.Draft == nil {
		return lost(s, in.Tenant.Location()), nil
	}

	start := m.now()
	if s.Draft.Start != nil {
		start = *s.Draft.Start
	}
	setDuration(s.Draft, time.Duration(mins)*time.Minute)
	return m.commit(ctx, in, s, start)
}

func (m *Machine) timeChoice(ctx context.Context, in Input, s *Session, arg string) (Prompt, error) {
	if s.Draft == nil {
		return lost(s, in.Tenant.Location()), nil
	}

	if arg == "custom" {
		s.State = StateCustomTimeInput
		return Prompt{Text: customTimeHelp, Buttons: cancelRow()}, nil
	}

	ago := 0
	if arg != "now" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			return Prompt{}, fmt.Errorf("time choice %q: %w", arg, domain.ErrValidation)
		}
		ago = n
	}
	return m.commit(ctx, in, s, m.now().Add(-time.Duration(ago)*time.Minute))
}

func (m *Machine) health(s *Session, kind string) (Prompt, error) {
	switch kind {
	case domain.HealthTemperature:
		s.reset(StateValueInput)
		s.Draft = &Draft{Type: domain.EventTypeHealth, Details: domain.Details{
			domain.DetailKind: kind,
			domain.DetailUnit: "°C",
		}}
		return Prompt{Text: valueQuestion(s.Draft), Buttons: cancelRow()}, nil
	case domain.HealthMedicine, domain.HealthVaccine, domain.HealthNote:
		s.reset(StateTimeSelection)
		s.Draft = &Draft{Type: domain.EventTypeHealth, Details: domain.Details{domain.DetailKind: kind}}
		return timePrompt(s.Draft), nil
	}
	return Prompt{}, fmt.Errorf("health kind %q: %w", kind, domain.ErrValidation)
}

// classify completes a stopped feeding timer with the side used.
func (m *Machine) classify(ctx context.Context, in Input, s *Session, side string) (Prompt, error) {
	switch side {
	case domain.SourceLeft, domain.SourceRight, domain.SourceBoth, domain.SourceBottle:
	default:
		return Prompt{}, fmt.Errorf("feeding side %q: %w", side, domain.ErrValidation)
	}
	if s.Draft == nil {
		return lost(s, in.Tenant.Location()), nil
	}

	s.Draft.set(domain.DetailSource, side)
	start := m.now()
	if s.Draft.Start != nil {
		start = *s.Draft.Start
	}
	return m.commit(ctx, in, s, start)
}

func (m *Machine) text(ctx context.Context, in Input, s *Session, text string) (Prompt, error) {
	loc := in.Tenant.Location()

	switch s.State {
	case StateCustomTimeInput:
		ts, err := ParseCustomTime(text, m.now(), loc)
		if err != nil {
			return Prompt{Text: "⚠️ Formato non valido. Riprova (es: 14:30 o 27/01 10:00):", Buttons: cancelRow(), Err: err}, nil
		}
		if s.Draft == nil {
			return lost(s, loc), nil
		}
		return m.commit(ctx, in, s, ts)

	case StateValueInput:
		if s.Draft == nil {
			return lost(s, loc), nil
		}
		v, err := ParseValue(text)
		if err != nil {
			return Prompt{
				Text:    "⚠️ Inserisci un numero valido maggiore di zero.\n" + valueQuestion(s.Draft),
				Buttons: cancelRow(),
				Err:     err,
			}, nil
		}
		s.Draft.set(domain.DetailValue, v)
		s.State = StateTimeSelection
		p := timePrompt(s.Draft)
		unit, _ := s.Draft.Details.String(domain.DetailUnit)
		p.Text = fmt.Sprintf("Valore registrato: %g %s. Quando?", v, unit)
		return p, nil

	case StateProfileName:
		if err := profile.ValidateName(text); err != nil {
			return Prompt{Text: "⚠️ Il nome deve essere tra 2 e 30 caratteri. Riprova:", Err: err}, nil
		}
		s.ProfileName = text
		s.State = StateProfileBirthDate
		return Prompt{Text: fmt.Sprintf("Piacere, %s! 💕\n\nOra dimmi la data di nascita (formato GG/MM/AAAA):", text)}, nil

	case StateProfileBirthDate:
		return m.saveProfile(ctx, in, s, text)
	}

	return Prompt{}, nil
}

func (m *Machine) saveProfile(ctx context.Context, in Input, s *Session, text string) (Prompt, error) {
	if s.ProfileName == "" {
		s.reset(StateProfileName)
		return Prompt{Text: "⚠️ Sessione scaduta. Come si chiama?", Err: domain.ErrSessionLost}, nil
	}

	birth, err := profile.ParseBirthDate(text)
	if err != nil {
		return Prompt{Text: "⚠️ Formato non valido. Usa GG/MM/AAAA (es. 15/05/2026). Riprova:", Err: err}, nil
	}

	baby, err := m.profiles.Save(ctx, in.Tenant.ID, s.ProfileName, &birth)
	if errors.Is(err, domain.ErrValidation) {
		return Prompt{Text: "⚠️ La data di nascita non può essere nel futuro. Riprova:", Err: err}, nil
	}
	if err != nil {
		return Prompt{}, fmt.Errorf("save profile: %w", err)
	}

	s.reset(StateTerminal)
	return Prompt{Text: fmt.Sprintf("✅ Profilo di %s salvato!", baby.Name)}, nil
}

func (d *Draft) set(key string, v any) {
	if d.Details == nil {
		d.Details = domain.Details{}
	}
	d.Details[key] = v
}

func setDuration(d *Draft, dur time.Duration) {
	d.set(domain.DetailDurationSeconds, int(dur/time.Second))
	d.set(domain.DetailDurationText, fmt.Sprintf("%d min", int(dur.Minutes())))
}
