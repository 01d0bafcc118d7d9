package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ntotao/baby-tracker/internal/adapter/homeassistant"
	"github.com/ntotao/baby-tracker/internal/adapter/session"
	"github.com/ntotao/baby-tracker/internal/auth"
	"github.com/ntotao/baby-tracker/internal/capture"
	"github.com/ntotao/baby-tracker/internal/config"
	"github.com/ntotao/baby-tracker/internal/service/event"
	"github.com/ntotao/baby-tracker/internal/service/importer"
	"github.com/ntotao/baby-tracker/internal/service/profile"
	"github.com/ntotao/baby-tracker/internal/service/tenant"
	"github.com/ntotao/baby-tracker/internal/telemetry"
	"github.com/ntotao/baby-tracker/internal/transport/chat"
	"github.com/ntotao/baby-tracker/internal/transport/middleware"
	"github.com/ntotao/baby-tracker/internal/transport/rest"
	"github.com/ntotao/baby-tracker/internal/transport/rest/dataloader"
	"github.com/ntotao/baby-tracker/internal/transport/telegram"
)

type timerFlag interface {
	SetActive(ctx context.Context, active bool) error
	Active(ctx context.Context) (bool, error)
}

// Run is the application entry point. It wires storage, services and the
// enabled transports, then blocks until ctx is cancelled or a transport
// fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("database", cfg.Database.Driver),
		slog.String("sessions", cfg.Session.Backend),
		slog.Bool("telegram", cfg.Telegram.Enabled),
		slog.Bool("http", cfg.Server.Enabled),
	)

	shutdownTracing, err := telemetry.Setup(ctx, logger, cfg.Telemetry, Version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	store, err := OpenStorage(ctx, logger, cfg.Database, false)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	checks := []rest.Check{store.Check}

	sessions, stopSessions, sessionCheck, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		return err
	}
	defer stopSessions()
	if sessionCheck != nil {
		checks = append(checks, *sessionCheck)
	}

	timer := newTimerFlag(logger, cfg.HomeAssistant)

	tenants := tenant.NewService(logger, store.Tenants, cfg.Tracker.DefaultTimezone)
	events := event.NewService(logger, store.Events, store.Babies, timer, cfg.Tracker.HistoryPageSize)
	profiles := profile.NewService(logger, store.Babies)
	imports := importer.New(logger, events)
	machine := capture.NewMachine(logger, capture.Config{
		TTL:      cfg.Session.TTL,
		TimerTTL: cfg.Session.TimerTTL,
		Picker:   cfg.Tracker.FeedingPicker,
	}, sessions, events, timer, imports, profiles)

	var tokens *auth.JWTManager
	if cfg.Server.Enabled {
		tokens = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.APITokenTTL)
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Telegram.Enabled {
		api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("connect telegram: %w", err)
		}
		api.Debug = cfg.Telegram.Debug
		logger.Info("telegram authorized", slog.String("bot", api.Self.UserName))

		router := newRouter(logger, cfg, api.Self.UserName, tenants, events, machine, tokens)
		bot := telegram.New(logger, telegram.Config{
			PollTimeout: cfg.Telegram.PollTimeout,
			Workers:     cfg.Telegram.Workers,
		}, api, router, nil)
		g.Go(func() error { return bot.Run(gctx) })
	}

	if cfg.Server.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()

		handler := NewHTTPHandler(logger, cfg, HTTPDeps{
			Tenants: tenants,
			Events:  events,
			Tokens:  tokens,
			Limiter: limiter,
			Checks:  checks,
		})
		srv := &http.Server{
			Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
			Handler:      otelhttp.NewHandler(handler, cfg.Telemetry.ServiceName),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}
		g.Go(func() error {
			logger.Info("http server listening", slog.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(sctx); err != nil {
				return fmt.Errorf("http shutdown: %w", err)
			}
			logger.Info("http server stopped")
			return nil
		})
	}

	err = g.Wait()
	logger.Info("application stopped")
	return err
}

// HTTPDeps are the collaborators of the HTTP surface.
type HTTPDeps struct {
	Tenants *tenant.Service
	Events  *event.Service
	Tokens  *auth.JWTManager
	Limiter *middleware.RateLimiter
	Checks  []rest.Check
}

// NewHTTPHandler assembles the routes and the middleware chain.
func NewHTTPHandler(logger *slog.Logger, cfg *config.Config, deps HTTPDeps) http.Handler {
	health := rest.NewHealthHandler(Version, deps.Checks...)
	api := rest.NewAPIHandler(logger, deps.Tenants, deps.Events, cfg.Tracker.ChartDays)

	protect := middleware.Chain(
		middleware.RequireTenant(deps.Tokens),
		deps.Limiter.Limit(cfg.RateLimit.PerMinute),
		middleware.Middleware(dataloader.Middleware(deps.Events)),
	)
	mux := rest.Routes(health, api, protect)

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)
}

func newRouter(
	logger *slog.Logger,
	cfg *config.Config,
	botUsername string,
	tenants *tenant.Service,
	events *event.Service,
	machine *capture.Machine,
	tokens *auth.JWTManager,
) *chat.Router {
	allow := slices.Clone(cfg.Telegram.AllowList)
	if len(allow) > 0 && cfg.Telegram.AdminID != 0 {
		allow = append(allow, cfg.Telegram.AdminID)
	}
	chatCfg := chat.Config{
		BotUsername: botUsername,
		WebAppURL:   cfg.Telegram.WebAppURL,
		ChartDays:   cfg.Tracker.ChartDays,
	}
	guard := tenant.NewGuard(allow)

	// A nil *JWTManager must not reach the router as a non-nil interface.
	if tokens == nil {
		return chat.NewRouter(logger, chatCfg, guard, tenants, events, machine, nil)
	}
	return chat.NewRouter(logger, chatCfg, guard, tenants, events, machine, tokens)
}

func newSessionStore(ctx context.Context, cfg config.SessionConfig) (capture.SessionStore, func(), *rest.Check, error) {
	if cfg.Backend == config.SessionRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := session.NewRedisStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		check := &rest.Check{Name: "sessions", Ping: store.Ping}
		return store, func() { _ = client.Close() }, check, nil
	}

	store := session.NewMemoryStore(cfg.SweepInterval)
	return store, store.Stop, nil, nil
}

func newTimerFlag(logger *slog.Logger, cfg config.HomeAssistantConfig) timerFlag {
	if !cfg.Enabled() {
		return &homeassistant.LocalFlag{}
	}
	logger.Info("home assistant timer bridge enabled", slog.String("entity", cfg.TimerEntity))
	return homeassistant.NewClient(cfg.BaseURL, cfg.Token, cfg.TimerEntity, cfg.Timeout, nil)
}
