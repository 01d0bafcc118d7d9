package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ntotao/baby-tracker/internal/capture"
	"github.com/ntotao/baby-tracker/internal/domain"
	"github.com/ntotao/baby-tracker/internal/service/tenant"
)

const helpText = "👶 Baby Tracker\n\n" +
	"/menu - registra un evento\n" +
	"/status - riepilogo di oggi\n" +
	"/history - storico eventi\n" +
	"/chart - andamento poppate\n" +
	"/timer - avvia il timer poppata\n" +
	"/sleep - avvia il timer sonno\n" +
	"/stop - ferma il timer\n" +
	"/profile - profilo del bambino\n" +
	"/import - importa dati da CSV\n" +
	"/admin - pannello amministratore\n" +
	"/cancel - annulla l'operazione in corso"

func (r *Router) mainMenu() [][]Option {
	rows := [][]Option{
		{{Label: "📝 Registra evento", Data: menuPrefix + "log"}},
		{{Label: "📊 Riepilogo", Data: menuPrefix + "status"}, {Label: "📜 Storico", Data: menuPrefix + "history:0"}},
	}
	if r.cfg.WebAppURL != "" {
		rows = append(rows, []Option{{Label: "📈 Grafici", URL: r.cfg.WebAppURL}})
	}
	return rows
}

func (r *Router) start(ctx context.Context, a Action) (Reply, error) {
	if strings.HasPrefix(a.StartPayload, tenant.InvitePrefix) {
		return r.acceptInvite(ctx, a)
	}

	t, err := r.tenants.Resolve(ctx, a.UserID)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound):
		return Reply{
			Text: "Ciao! Benvenuto su Baby Tracker 👶\n\n" +
				"Qui puoi registrare poppate, pannolini, sonno e crescita del tuo bambino.\n" +
				"Crea il tuo tracker per iniziare.",
			Options: [][]Option{{{Label: "🆕 Crea nuovo tracker", Data: menuPrefix + "register"}}},
		}, nil
	case err != nil:
		return Reply{}, err
	}

	return Reply{
		Text:    fmt.Sprintf("👋 Bentornato!\nTracker: %s", t.ID),
		Options: r.mainMenu(),
	}, nil
}

func (r *Router) acceptInvite(ctx context.Context, a Action) (Reply, error) {
	_, err := r.tenants.AcceptInvite(ctx, a.StartPayload, a.UserID)
	switch {
	case errors.Is(err, domain.ErrTenantNotFound), errors.Is(err, domain.ErrValidation):
		return Reply{Text: "❌ Invito non valido o scaduto."}, nil
	case err != nil:
		return Reply{}, err
	}
	return Reply{Text: "✅ Ti sei unito al tracker come membro autorizzato.\n" +
		"In chat gli eventi li registra chi ha creato il tracker: " +
		"chiedigli un token API (/token) per registrare dalla REST API."}, nil
}

func (r *Router) register(ctx context.Context, a Action) (Reply, error) {
	t, err := r.tenants.Create(ctx, a.UserID)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return Reply{Text: "Hai già un tracker! Usa /menu per registrare un evento.", Edit: true}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text: fmt.Sprintf("✅ Tracker creato!\nID: %s\nFuso orario: %s\n\n"+
			"Usa /profile per inserire nome e data di nascita.", t.ID, t.Timezone),
		Options: r.mainMenu(),
		Edit:    true,
	}, nil
}

func (r *Router) help(context.Context, Action) (Reply, error) {
	return Reply{Text: helpText}, nil
}

func (r *Router) status(ctx context.Context, a Action) (Reply, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	st, err := r.events.Status(ctx, t)
	if err != nil {
		return Reply{}, err
	}
	last24, err := r.events.Last24hStats(ctx, t.ID)
	if err != nil {
		return Reply{}, err
	}
	timer, err := r.capture.Running(ctx, capture.Key{ChatID: a.ChatID, UserID: a.UserID})
	if err != nil {
		return Reply{}, err
	}

	loc := t.Location()
	var b strings.Builder
	title := "oggi"
	if st.BabyName != "" {
		title = st.BabyName
	}
	fmt.Fprintf(&b, "📊 Riepilogo %s\n\n", title)
	fmt.Fprintf(&b, "Oggi: 🍼 %d · 💩 %d · 💧 %d\n", st.CountFeeding, st.CountPoo, st.CountPee)
	fmt.Fprintf(&b, "Ultime 24h: 🍼 %d · 💩 %d · 💧 %d\n\n", last24.Feeding, last24.Poo, last24.Pee)

	feed := since(st.LastFeeding, loc)
	if st.LastFeedingSide != "" && st.LastFeeding != nil {
		feed += ", " + domain.SourceLabel(st.LastFeedingSide)
	}
	fmt.Fprintf(&b, "🍼 Ultima poppata: %s\n", feed)
	fmt.Fprintf(&b, "💩 Ultima cacca: %s\n", since(st.LastPoo, loc))
	fmt.Fprintf(&b, "💧 Ultima pipì: %s", since(st.LastPee, loc))
	if timer != nil {
		fmt.Fprintf(&b, "\n\n⏱️ %s in corso dalle %s", timer.Kind.Label(), timer.StartedAt.In(loc).Format("15:04"))
	}

	return Reply{Text: b.String(), Options: r.mainMenu(), Edit: a.Option != ""}, nil
}

// since renders a past instant as "HH:MM (N fa)", or a dash when unknown.
func since(ts *time.Time, loc *time.Location) string {
	if ts == nil {
		return "n/d"
	}
	ago := time.Since(*ts)
	var rel string
	switch {
	case ago < time.Minute:
		rel = "adesso"
	case ago < time.Hour:
		rel = fmt.Sprintf("%d min fa", int(ago.Minutes()))
	default:
		rel = fmt.Sprintf("%dh %dm fa", int(ago.Hours()), int(ago.Minutes())%60)
	}
	return fmt.Sprintf("%s (%s)", ts.In(loc).Format("15:04"), rel)
}

func (r *Router) historyCommand(ctx context.Context, a Action) (Reply, error) {
	return r.history(ctx, a, 0)
}

func (r *Router) historyOption(ctx context.Context, a Action) (Reply, error) {
	page := 0
	if i := strings.LastIndexByte(a.Option, ':'); i >= 0 {
		if n, err := strconv.Atoi(a.Option[i+1:]); err == nil && n >= 0 {
			page = n
		}
	}
	return r.history(ctx, a, page)
}

func (r *Router) history(ctx context.Context, a Action, page int) (Reply, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	hp, err := r.events.History(ctx, t.ID, page)
	if err != nil {
		return Reply{}, err
	}

	edit := a.Option != ""
	if len(hp.Events) == 0 && hp.Page == 0 {
		return Reply{Text: "📜 Nessun evento registrato.", Edit: edit}, nil
	}

	loc := t.Location()
	var b strings.Builder
	fmt.Fprintf(&b, "📜 Storico (pagina %d)\n", hp.Page+1)
	for _, ev := range hp.Events {
		fmt.Fprintf(&b, "\n%s  %s", ev.Timestamp.In(loc).Format("02/01 15:04"), ev.Describe())
	}

	var nav []Option
	if hp.Page > 0 {
		nav = append(nav, Option{Label: "◀️ Più recenti", Data: fmt.Sprintf("%shistory:%d", menuPrefix, hp.Page-1)})
	}
	if hp.HasNext {
		nav = append(nav, Option{Label: "Meno recenti ▶️", Data: fmt.Sprintf("%shistory:%d", menuPrefix, hp.Page+1)})
	}
	var rows [][]Option
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, []Option{{Label: "↩️ Elimina ultimo evento", Data: menuPrefix + "undo"}})

	return Reply{Text: b.String(), Options: rows, Edit: edit}, nil
}

func (r *Router) confirmUndo(ctx context.Context, a Action) (Reply, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	recent, err := r.events.Recent(ctx, t.ID, 1)
	if err != nil {
		return Reply{}, err
	}
	if len(recent) == 0 {
		return Reply{Text: "Nessun evento da eliminare.", Edit: true}, nil
	}

	ev := recent[0]
	return Reply{
		Text: fmt.Sprintf("Eliminare l'ultimo evento?\n\n%s  %s",
			ev.Timestamp.In(t.Location()).Format("02/01 15:04"), ev.Describe()),
		Options: [][]Option{{
			{Label: "🗑️ Sì, elimina", Data: menuPrefix + "undo_confirm"},
			{Label: "❌ No", Data: menuPrefix + "history:0"},
		}},
		Edit: true,
	}, nil
}

func (r *Router) undo(ctx context.Context, a Action) (Reply, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	removed, err := r.events.RemoveMostRecent(ctx, t.ID)
	if err != nil {
		return Reply{}, err
	}
	if !removed {
		return Reply{Text: "Nessun evento da eliminare.", Edit: true}, nil
	}
	return Reply{Text: "↩️ Ultimo evento eliminato.", Options: r.mainMenu(), Edit: true}, nil
}

func (r *Router) chart(ctx context.Context, a Action) (Reply, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	points, err := r.events.FeedingChart(ctx, t, r.cfg.ChartDays)
	if err != nil {
		return Reply{}, err
	}
	growth, err := r.events.GrowthSeries(ctx, t.ID)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📈 Poppate degli ultimi %d giorni\n\n", r.cfg.ChartDays)
	for _, p := range points {
		day := p.Date
		if d, err := time.Parse(time.DateOnly, p.Date); err == nil {
			day = d.Format("02/01")
		}
		fmt.Fprintf(&b, "%s %s %d\n", day, strings.Repeat("▇", min(p.Count, 20)), p.Count)
	}

	latest := map[domain.EventType]domain.GrowthPoint{}
	for _, g := range growth {
		latest[g.Type] = g
	}
	if len(latest) > 0 {
		b.WriteString("\n📏 Ultime misurazioni\n")
		for _, typ := range []domain.EventType{domain.EventTypeWeight, domain.EventTypeHeight, domain.EventTypeHead} {
			if g, ok := latest[typ]; ok {
				fmt.Fprintf(&b, "%s: %g %s (%s)\n", typ.Label(), g.Value, g.Unit, g.Timestamp.In(t.Location()).Format("02/01/2006"))
			}
		}
	}

	var opts [][]Option
	if r.cfg.WebAppURL != "" {
		opts = [][]Option{{{Label: "📈 Apri grafici", URL: r.cfg.WebAppURL}}}
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n"), Options: opts}, nil
}

func (r *Router) adminPanel(ctx context.Context, a Action) (Reply, error) {
	t, err := r.admin(ctx, a)
	if err != nil {
		return Reply{}, err
	}

	text := fmt.Sprintf("👑 Pannello amministratore\n\n"+
		"Tracker: %s\nFuso orario: %s\nUtenti autorizzati: %d\n\n"+
		"Usa /timezone <zona> per cambiare il fuso orario (es. /timezone Europe/Rome).",
		t.ID, t.Timezone, len(t.AllowedUsers))

	opts := [][]Option{{{Label: "🔗 Link di invito", Data: menuPrefix + "invite"}}}
	if r.tokens != nil {
		opts = append(opts, []Option{{Label: "🔑 Token API", Data: menuPrefix + "token"}})
	}
	return Reply{Text: text, Options: opts}, nil
}

func (r *Router) invite(ctx context.Context, a Action) (Reply, error) {
	t, err := r.admin(ctx, a)
	if err != nil {
		return Reply{}, err
	}
	if r.cfg.BotUsername == "" {
		return Reply{}, errors.New("invite link: bot username unknown")
	}
	link := tenant.InviteLink(r.cfg.BotUsername, t.ID)
	return Reply{Text: "🔗 Condividi questo link per invitare un altro genitore:\n\n" + link}, nil
}

func (r *Router) token(ctx context.Context, a Action) (Reply, error) {
	t, err := r.admin(ctx, a)
	if err != nil {
		return Reply{}, err
	}
	if r.tokens == nil {
		return Reply{Text: "L'API HTTP non è attiva."}, nil
	}
	tok, expires, err := r.tokens.IssueTenantToken(t.ID, a.UserID)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("🔑 Token API (valido fino al %s):\n\n%s",
		expires.In(t.Location()).Format("02/01/2006"), tok)}, nil
}

func (r *Router) timezone(ctx context.Context, a Action) (Reply, error) {
	t, err := r.admin(ctx, a)
	if err != nil {
		return Reply{}, err
	}
	tz := strings.TrimSpace(a.StartPayload)
	if tz == "" {
		return Reply{Text: fmt.Sprintf("Fuso orario attuale: %s\nUso: /timezone Europe/Rome", t.Timezone)}, nil
	}
	if err := r.tenants.SetTimezone(ctx, t.ID, tz); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return Reply{Text: fmt.Sprintf("⚠️ Fuso orario %q sconosciuto. Usa un nome IANA come Europe/Rome.", tz)}, nil
		}
		return Reply{}, err
	}
	return Reply{Text: "✅ Fuso orario impostato: " + tz}, nil
}
