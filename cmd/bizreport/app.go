package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/business_report_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/business_report_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/business_report_engine/internal/core/ports/services"
	"github.com/SscSPs/business_report_engine/internal/core/services"
	"github.com/SscSPs/business_report_engine/internal/platform/config"
	"github.com/SscSPs/business_report_engine/internal/platform/logging"
	"github.com/SscSPs/business_report_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/business_report_engine/internal/repositories/kvstore"
	"github.com/SscSPs/business_report_engine/pkg/database"
)

// app holds the process-wide resources shared by the commands.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   portsrepo.KeyValueStore
	repos   portsrepo.RepositoryProvider
	svc     *portssvc.ServiceContainer
	closers []func()
}

func (a *app) init() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.NewLogger(os.Stderr, cfg.LogLevel, cfg.IsProduction)
	slog.SetDefault(a.logger)
	return nil
}

// operation returns a context carrying a timeout and an operation logger.
func (a *app) operation(parent context.Context, name string) (context.Context, func(error)) {
	ctx, cancel := context.WithTimeout(parent, a.cfg.OperationTimeout)
	ctx, done := logging.StartOperation(ctx, a.logger, name)
	return ctx, func(err error) {
		done(err)
		cancel()
	}
}

// openStore connects the draft and visibility store.
func (a *app) openStore() (portsrepo.KeyValueStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	switch a.cfg.DraftStore {
	case config.DraftStoreMemory:
		a.logger.Warn("Using the in-memory draft store; drafts end with this process")
		a.store = kvstore.NewMemoryStore()
	default:
		rs, err := kvstore.NewRedisStore(a.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open draft store: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rs.Close() })
		a.store = rs
	}
	return a.store, nil
}

// services wires the database, the store and the service container.
func (a *app) services(ctx context.Context) (*portssvc.ServiceContainer, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, a.cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.closers = append(a.closers, func() { database.ClosePgxPool(pool) })

	a.repos = pgsql.NewRepositoryProvider(pool, store)
	svc, err := services.NewServiceContainer(a.repos, services.WithDraftRestoredHook(
		func(ctx context.Context, section domain.SectionID, period domain.Period) {
			a.logger.InfoContext(ctx, "Restored unsaved changes",
				slog.String("section", string(section)), slog.Int("period", int(period)))
		}))
	if err != nil {
		return nil, err
	}
	a.svc = svc
	return svc, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func newVisibility(store portsrepo.KeyValueStore) portssvc.VisibilitySvc {
	return services.NewVisibilityService(store)
}
