package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ntotao/baby-tracker/internal/adapter/postgres"
	pgbaby "github.com/ntotao/baby-tracker/internal/adapter/postgres/baby"
	pgevent "github.com/ntotao/baby-tracker/internal/adapter/postgres/event"
	pgtenant "github.com/ntotao/baby-tracker/internal/adapter/postgres/tenant"
	"github.com/ntotao/baby-tracker/internal/adapter/sqlite"
	"github.com/ntotao/baby-tracker/internal/config"
	"github.com/ntotao/baby-tracker/internal/service/event"
	"github.com/ntotao/baby-tracker/internal/service/profile"
	"github.com/ntotao/baby-tracker/internal/service/tenant"
	"github.com/ntotao/baby-tracker/internal/transport/rest"
)

var (
	_ event.Store   = (*pgevent.Repo)(nil)
	_ tenant.Store  = (*pgtenant.Repo)(nil)
	_ profile.Store = (*pgbaby.Repo)(nil)
	_ event.Store   = (*sqlite.EventStore)(nil)
	_ tenant.Store  = (*sqlite.TenantStore)(nil)
	_ profile.Store = (*sqlite.BabyStore)(nil)
)

// Storage is the opened persistence layer for the configured driver.
type Storage struct {
	Events  event.Store
	Tenants tenant.Store
	Babies  profile.Store
	// Check probes the database for readiness.
	Check rest.Check
	// InTx runs fn in one transaction where the driver supports it;
	// otherwise fn runs as is.
	InTx  func(ctx context.Context, fn func(ctx context.Context) error) error
	close func()
}

// Close releases the underlying connections.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStorage connects to the configured database and applies migrations
// when AutoMigrate is set (or always, when force is true).
func OpenStorage(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig, force bool) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, log, cfg, force)
	case config.DriverSQLite:
		return openSQLite(ctx, log, cfg, force)
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func openPostgres(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig, force bool) (*Storage, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate || force {
		n, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.InfoContext(ctx, "migrations applied", slog.String("driver", cfg.Driver), slog.Int("count", n))
	}

	txm := postgres.NewTxManager(pool)
	return &Storage{
		Events:  pgevent.New(pool),
		Tenants: pgtenant.New(pool),
		Babies:  pgbaby.New(pool),
		Check:   rest.Check{Name: "database", Ping: pool.Ping},
		InTx:    txm.RunInTx,
		close:   pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig, force bool) (*Storage, error) {
	db, err := sqlite.Open(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate || force {
		n, err := sqlite.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		log.InfoContext(ctx, "migrations applied", slog.String("driver", cfg.Driver), slog.Int("count", n))
	}

	return &Storage{
		Events:  sqlite.NewEventStore(db),
		Tenants: sqlite.NewTenantStore(db),
		Babies:  sqlite.NewBabyStore(db),
		Check:   rest.Check{Name: "database", Ping: db.PingContext},
		InTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
		close: func() { _ = db.Close() },
	}, nil
}
