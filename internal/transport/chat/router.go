package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ntotao/baby-tracker/internal/capture"
	"github.com/ntotao/baby-tracker/internal/domain"
	"github.com/ntotao/baby-tracker/internal/service/tenant"
)

// menuPrefix marks options handled by the router itself.
const menuPrefix = "menu:"

var tracer = otel.Tracer("github.com/ntotao/baby-tracker/internal/transport/chat")

type accessGuard interface {
	Check(userID int64) tenant.Decision
}

type tenantService interface {
	Resolve(ctx context.Context, userID int64) (*domain.Tenant, error)
	Create(ctx context.Context, userID int64) (*domain.Tenant, error)
	AcceptInvite(ctx context.Context, payload string, userID int64) (uuid.UUID, error)
	SetTimezone(ctx context.Context, tenantID uuid.UUID, tz string) error
}

type eventService interface {
	Status(ctx context.Context, tenant *domain.Tenant) (*domain.Status, error)
	Last24hStats(ctx context.Context, tenantID uuid.UUID) (domain.Stats24h, error)
	Recent(ctx context.Context, tenantID uuid.UUID, limit int) ([]domain.Event, error)
	History(ctx context.Context, tenantID uuid.UUID, page int) (*domain.HistoryPage, error)
	RemoveMostRecent(ctx context.Context, tenantID uuid.UUID) (bool, error)
	FeedingChart(ctx context.Context, tenant *domain.Tenant, days int) ([]domain.ChartPoint, error)
	GrowthSeries(ctx context.Context, tenantID uuid.UUID) ([]domain.GrowthPoint, error)
}

type captureMachine interface {
	Menu(ctx context.Context, in capture.Input) (capture.Prompt, error)
	Cancel(ctx context.Context, in capture.Input) (capture.Prompt, error)
	BeginImport(ctx context.Context, in capture.Input) (capture.Prompt, error)
	BeginProfile(ctx context.Context, in capture.Input) (capture.Prompt, error)
	Option(ctx context.Context, in capture.Input, data string) (capture.Prompt, error)
	Text(ctx context.Context, in capture.Input, text string) (capture.Prompt, bool, error)
	Document(ctx context.Context, in capture.Input, name string, r io.Reader) (capture.Prompt, bool, error)
	StartTimer(ctx context.Context, in capture.Input, kind domain.EventType) (capture.Prompt, error)
	StopTimer(ctx context.Context, in capture.Input) (capture.Prompt, error)
	Running(ctx context.Context, key capture.Key) (*capture.Timer, error)
}

type tokenIssuer interface {
	IssueTenantToken(tenantID uuid.UUID, userID int64) (string, time.Time, error)
}

// Config holds presentation settings of the router.
type Config struct {
	// BotUsername is used to build invite deep links.
	BotUsername string
	// WebAppURL, when set, adds a button linking to the charts page.
	WebAppURL string
	ChartDays int
}

type handler func(ctx context.Context, a Action) (Reply, error)

// Router dispatches actions. It is safe for concurrent use; the dispatch
// tables are built once in NewRouter and never modified.
type Router struct {
	cfg      Config
	guard    accessGuard
	tenants  tenantService
	events   eventService
	capture  captureMachine
	tokens   tokenIssuer
	log      *slog.Logger
	commands map[string]handler
	options  map[string]handler
}

// NewRouter creates a router. tokens may be nil, in which case /token is
// unavailable.
func NewRouter(
	log *slog.Logger,
	cfg Config,
	guard accessGuard,
	tenants tenantService,
	events eventService,
	machine captureMachine,
	tokens tokenIssuer,
) *Router {
	if cfg.ChartDays <= 0 {
		cfg.ChartDays = 7
	}
	r := &Router{
		cfg:     cfg,
		guard:   guard,
		tenants: tenants,
		events:  events,
		capture: machine,
		tokens:  tokens,
		log:     log.With("service", "chat"),
	}

	r.commands = map[string]handler{
		"start":    r.start,
		"help":     r.help,
		"menu":     r.captureMenu,
		"log":      r.captureMenu,
		"cancel":   r.cancel,
		"status":   r.status,
		"history":  r.historyCommand,
		"chart":    r.chart,
		"timer":    r.startTimer(domain.EventTypeFeed),
		"sleep":    r.startTimer(domain.EventTypeSleep),
		"stop":     r.stopTimer,
		"profile":  r.profile,
		"import":   r.beginImport,
		"admin":    r.adminPanel,
		"invite":   r.invite,
		"token":    r.token,
		"timezone": r.timezone,
	}
	r.options = map[string]handler{
		"register":     r.register,
		"log":          r.captureMenu,
		"status":       r.status,
		"history":      r.historyOption,
		"undo":         r.confirmUndo,
		"undo_confirm": r.undo,
		"invite":       r.invite,
		"token":        r.token,
	}
	return r
}

// Handle processes one action to completion and returns the reply. Errors
// are turned into user-facing messages; Handle never fails.
func (r *Router) Handle(ctx context.Context, a Action) Reply {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "chat."+a.kind(), trace.WithAttributes(
		attribute.Int64("chat.user_id", a.UserID),
		attribute.String("chat.command", a.Command),
	))
	defer span.End()

	reply, err := r.dispatch(ctx, a)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		reply = r.replyForError(ctx, a, err)
	}

	attrs := []slog.Attr{
		slog.String("kind", a.kind()),
		slog.Int64("user_id", a.UserID),
		slog.Int64("chat_id", a.ChatID),
		slog.Duration("duration", time.Since(start)),
	}
	if a.Command != "" {
		attrs = append(attrs, slog.String("command", a.Command))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	r.log.LogAttrs(ctx, slog.LevelInfo, "chat.update", attrs...)

	return reply
}

func (r *Router) dispatch(ctx context.Context, a Action) (Reply, error) {
	if d := r.guard.Check(a.UserID); !d.Allowed {
		r.log.WarnContext(ctx, "access denied",
			slog.Int64("user_id", a.UserID),
			slog.String("reason", d.Reason),
		)
		return Reply{}, fmt.Errorf("%s: %w", d.Reason, domain.ErrUnauthorized)
	}

	switch {
	case a.Command != "":
		h, ok := r.commands[a.Command]
		if !ok {
			return Reply{Text: "Comando sconosciuto. Usa /help per l'elenco dei comandi."}, nil
		}
		return h(ctx, a)

	case a.Option != "":
		if capture.IsOption(a.Option) {
			return r.captureOption(ctx, a)
		}
		rest, ok := strings.CutPrefix(a.Option, menuPrefix)
		verb, _, _ := strings.Cut(rest, ":")
		h, known := r.options[verb]
		if !ok || !known {
			return Reply{}, fmt.Errorf("option %q: %w", a.Option, domain.ErrValidation)
		}
		return h(ctx, a)

	case a.Document != nil:
		return r.document(ctx, a)
	}
	return r.text(ctx, a)
}

// input resolves the caller's tenant and builds the capture input.
func (r *Router) input(ctx context.Context, a Action) (capture.Input, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return capture.Input{}, err
	}
	return capture.Input{Tenant: t, ChatID: a.ChatID, UserID: a.UserID}, nil
}

// admin resolves the tenant and requires the caller to be its creator.
func (r *Router) admin(ctx context.Context, a Action) (*domain.Tenant, error) {
	t, err := r.tenants.Resolve(ctx, a.UserID)
	if err != nil {
		return nil, err
	}
	if !t.IsAdmin(a.UserID) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func (r *Router) withCapture(
	fn func(ctx context.Context, in capture.Input) (capture.Prompt, error),
) handler {
	return func(ctx context.Context, a Action) (Reply, error) {
		in, err := r.input(ctx, a)
		if err != nil {
			return Reply{}, err
		}
		p, err := fn(ctx, in)
		if err != nil {
			return Reply{}, err
		}
		return fromPrompt(p, a.Option != ""), nil
	}
}

func (r *Router) captureMenu(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(r.capture.Menu)(ctx, a)
}

func (r *Router) cancel(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(r.capture.Cancel)(ctx, a)
}

func (r *Router) profile(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(r.capture.BeginProfile)(ctx, a)
}

func (r *Router) beginImport(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(r.capture.BeginImport)(ctx, a)
}

func (r *Router) stopTimer(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(r.capture.StopTimer)(ctx, a)
}

func (r *Router) startTimer(kind domain.EventType) handler {
	return r.withCapture(func(ctx context.Context, in capture.Input) (capture.Prompt, error) {
		return r.capture.StartTimer(ctx, in, kind)
	})
}

func (r *Router) captureOption(ctx context.Context, a Action) (Reply, error) {
	return r.withCapture(func(ctx context.Context, in capture.Input) (capture.Prompt, error) {
		return r.capture.Option(ctx, in, a.Option)
	})(ctx, a)
}

func (r *Router) text(ctx context.Context, a Action) (Reply, error) {
	in, err := r.input(ctx, a)
	if err != nil {
		return Reply{}, err
	}
	p, handled, err := r.capture.Text(ctx, in, a.Text)
	if err != nil {
		return Reply{}, err
	}
	if !handled {
		return Reply{Text: "Usa /menu per registrare un evento o /help per l'elenco dei comandi."}, nil
	}
	return fromPrompt(p, false), nil
}

func (r *Router) document(ctx context.Context, a Action) (Reply, error) {
	in, err := r.input(ctx, a)
	if err != nil {
		return Reply{}, err
	}

	body := &lazyReader{ctx: ctx, open: a.Document.Open}
	defer body.Close()

	p, handled, err := r.capture.Document(ctx, in, a.Document.Name, body)
	if err != nil {
		return Reply{}, err
	}
	if !handled {
		return Reply{Text: "Per importare dei dati usa prima /import."}, nil
	}
	return fromPrompt(p, false), nil
}

// replyForError maps a failure to the message shown to the user.
func (r *Router) replyForError(ctx context.Context, a Action, err error) Reply {
	edit := a.Option != ""

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return Reply{Text: fmt.Sprintf(
			"⛔ Non sei autorizzato a usare questo bot.\nIl tuo ID è %d: invialo all'amministratore per essere abilitato.",
			a.UserID,
		)}
	case errors.Is(err, domain.ErrForbidden):
		return Reply{Text: "⛔ Solo l'amministratore del tracker può usare questa funzione.", Edit: edit}
	case errors.Is(err, domain.ErrTenantNotFound):
		return Reply{Text: "Non hai ancora un tracker. Usa /start per crearne uno."}
	case errors.Is(err, domain.ErrValidation):
		return Reply{Text: "⚠️ Opzione non più valida. Usa /menu per ricominciare.", Edit: edit}
	}

	r.log.ErrorContext(ctx, "chat action failed",
		slog.Int64("user_id", a.UserID),
		slog.String("kind", a.kind()),
		slog.String("error", err.Error()),
	)
	return Reply{Text: "⚠️ Servizio momentaneamente non disponibile. Riprova tra poco."}
}
