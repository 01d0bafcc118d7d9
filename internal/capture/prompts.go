package capture

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ntotao/baby-tracker/internal/domain"
)

const customTimeHelp = "✍️ Scrivi l'orario nel formato HH:MM (per oggi) o GG/MM HH:MM (per altri giorni).\nEs: 14:30 o 27/01 10:00"

const importHelp = "📂 Importazione dati\n\n" +
	"Invia un file CSV con questo formato (punto e virgola come separatore):\n\n" +
	"GG/MM/AAAA;HH:MM;TIPO;VALORE;NOTE\n\n" +
	"Esempi:\n" +
	"28/01/2026;14:30;cacca;;\n" +
	"28/01/2026;15:00;allattamento;sx 15m;\n" +
	"28/01/2026;18:00;biberon;120ml;\n" +
	"28/01/2026;09:00;peso;4550;\n\n" +
	"Invia /cancel per annullare."

func cancelRow() [][]Button {
	return [][]Button{{{Label: "❌ Annulla", Data: OptCancel}}}
}

func stopButton(t *Timer, loc *time.Location) Button {
	return Button{
		Label: fmt.Sprintf("⏹️ Stop %s (dalle %s)", t.Kind.Label(), clock(t.StartedAt, loc)),
		Data:  optTimer + "stop",
	}
}

func typeMenu(s *Session, loc *time.Location) Prompt {
	rows := [][]Button{
		{{"💩 Cacca", optType + "poo"}, {"💧 Pipì", optType + "pee"}},
		{{"💩+💧 Entrambi", optType + "both"}},
		{{"👈 Tetta SX", optType + "feed_left"}, {"👉 Tetta DX", optType + "feed_right"}},
		{{"🍼 Biberon", optType + "feed_bottle"}, {"😴 Sonno", optType + "sleep"}},
		{{"⚖️ Peso", optType + "weight"}, {"📏 Altezza", optType + "height"}, {"📐 Cranio", optType + "head"}},
		{{"🩺 Salute", optType + "health"}},
	}
	if s.Timer != nil {
		rows = append(rows, []Button{stopButton(s.Timer, loc)})
	} else {
		rows = append(rows, []Button{
			{"▶️ Timer poppata", optTimer + "start_feed"},
			{"▶️ Timer sonno", optTimer + "start_sleep"},
		})
	}
	rows = append(rows, cancelRow()...)
	return Prompt{Text: "Cosa vuoi registrare?", Buttons: rows}
}

func timePrompt(d *Draft) Prompt {
	rows := [][]Button{{{"Adesso", optTime + "now"}}}
	var ago []Button
	for _, m := range timeAgoChoices {
		label := fmt.Sprintf("-%d min", m)
		if m == 60 {
			label = "-1 ora"
		}
		ago = append(ago, Button{label, optTime + strconv.Itoa(m)})
	}
	rows = append(rows, ago, []Button{{"✍️ Scrivi ora", optTime + "custom"}})
	rows = append(rows, cancelRow()...)

	return Prompt{
		Text:    fmt.Sprintf("Hai scelto: %s\nQuando è successo?", draftLabel(d)),
		Buttons: rows,
	}
}

func pickerPrompt(s *Session, now time.Time, loc *time.Location) Prompt {
	t := *s.Picker
	day := "Oggi"
	if !sameDay(t, now, loc) {
		day = t.In(loc).Format("02/01")
	}

	return Prompt{
		Text: fmt.Sprintf("🤱 %s\nSeleziona orario inizio:", draftLabel(s.Draft)),
		Buttons: [][]Button{
			{{"➕ 1h", optPick + "h+"}, {"➕ 10m", optPick + "m+"}},
			{{"🕒 " + clock(t, loc), optPick + "noop"}, {"📅 " + day, optPick + "day"}},
			{{"➖ 1h", optPick + "h-"}, {"➖ 10m", optPick + "m-"}},
			{{"✅ Conferma", optPick + "ok"}},
			{{"❌ Annulla", OptCancel}},
		},
	}
}

func durationPrompt(start time.Time, loc *time.Location) Prompt {
	var rows [][]Button
	for i := 0; i < len(durationPresets); i += 2 {
		var row []Button
		for _, m := range durationPresets[i:min(i+2, len(durationPresets))] {
			row = append(row, Button{fmt.Sprintf("%d min", m), optDur + strconv.Itoa(m)})
		}
		rows = append(rows, row)
	}
	rows = append(rows, cancelRow()...)
	return Prompt{
		Text:    fmt.Sprintf("✅ Inizio: %s\nQuanto è durato?", clock(start, loc)),
		Buttons: rows,
	}
}

func healthMenu() Prompt {
	return Prompt{
		Text: "🩺 Cosa vuoi registrare?",
		Buttons: [][]Button{
			{
				{domain.HealthKindLabel(domain.HealthTemperature), optHealth + domain.HealthTemperature},
				{domain.HealthKindLabel(domain.HealthMedicine), optHealth + domain.HealthMedicine},
			},
			{
				{domain.HealthKindLabel(domain.HealthVaccine), optHealth + domain.HealthVaccine},
				{domain.HealthKindLabel(domain.HealthNote), optHealth + domain.HealthNote},
			},
			{{"❌ Annulla", OptCancel}},
		},
	}
}

func sideMenu(minutes int) Prompt {
	return Prompt{
		Text: fmt.Sprintf("Poppata terminata! (%d min) Quale lato?", minutes),
		Buttons: [][]Button{
			{{"Sinistra (SX)", optSide + domain.SourceLeft}, {"Destra (DX)", optSide + domain.SourceRight}},
			{{"Entrambi", optSide + domain.SourceBoth}, {"Biberon", optSide + domain.SourceBottle}},
		},
	}
}

func valueQuestion(d *Draft) string {
	switch d.Type {
	case domain.EventTypeWeight:
		return "⚖️ Inserisci il peso in grammi (es. 4500):"
	case domain.EventTypeHeight:
		return "📏 Inserisci l'altezza in cm (es. 55):"
	case domain.EventTypeHead:
		return "📐 Inserisci la circonferenza cranica in cm (es. 38):"
	}
	return "🌡️ Inserisci la temperatura in °C (es. 37,5):"
}

// draftLabel names what is being captured, e.g. "🍼 Poppata (sinistro)".
func draftLabel(d *Draft) string {
	return domain.Event{Type: d.Type, Details: d.Details}.Describe()
}
