package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	attendeeservice "gatepass/internal/attendee/service"
	attendeestore "gatepass/internal/attendee/store"
	checkinmodels "gatepass/internal/checkin/models"
	checkinservice "gatepass/internal/checkin/service"
	checkinstore "gatepass/internal/checkin/store"
	"gatepass/internal/platform/config"
	"gatepass/internal/platform/httpserver"
	"gatepass/internal/platform/logger"
	"gatepass/internal/platform/metrics"
	"gatepass/internal/platform/postgres"
	platformredis "gatepass/internal/platform/redis"
	"gatepass/internal/platform/sheets"
	"gatepass/internal/report"
	"gatepass/internal/token"
	transport "gatepass/internal/transport/http"
)

// main wires dependencies and runs the server lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stores.close()

	m := metrics.New()
	attendees := attendeeservice.New(stores.attendees, token.NewIssuer(), cfg.Event.BaseURL)
	checkins := checkinservice.New(stores.attendees, stores.ledger)
	reports := report.New(stores.ledger)

	handler := transport.NewHandler(attendees, checkins, stores.ledger, reports, log, m, transport.Options{
		StrictDuplicates: cfg.Server.StrictDuplicates,
		Venues:           cfg.Event.Venues,
	})
	router := transport.NewRouter(handler, log, transport.RouterConfig{
		AdminToken:     cfg.Server.AdminToken,
		RequestTimeout: cfg.Server.RequestTimeout,
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting gatepass",
		"addr", cfg.Server.Addr,
		"storage_backend", cfg.Storage.Backend,
		"checkin_backend", checkinBackend(cfg.Storage),
		"strict_duplicates", cfg.Server.StrictDuplicates,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ledgerStore is the full ledger surface main has to wire: the engine
// appends and checks, the transport and reports read.
type ledgerStore interface {
	Append(ctx context.Context, e checkinmodels.Event) error
	ExistsGranted(ctx context.Context, token, venue string) (bool, error)
	ListByToken(ctx context.Context, token string) ([]checkinmodels.Event, error)
	List(ctx context.Context) ([]checkinmodels.Event, error)
}

type storeSet struct {
	attendees attendeeservice.Store
	ledger    ledgerStore
	closers   []func()
}

func (s *storeSet) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func checkinBackend(cfg config.Storage) string {
	if cfg.CheckinBackend != "" {
		return cfg.CheckinBackend
	}
	return cfg.Backend
}

// buildStores selects the storage adapters. STORAGE_BACKEND picks both
// collections; CHECKIN_BACKEND can move just the ledger elsewhere, e.g. a
// redis ledger next to postgres attendees.
func buildStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*storeSet, error) {
	set := &storeSet{}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		set.attendees = attendeestore.NewInMemoryStore()
		set.ledger = checkinstore.NewInMemoryStore()
		log.Warn("memory backend selected; data is lost on restart")

	case config.BackendPostgres:
		pool, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		set.closers = append(set.closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			set.close()
			return nil, err
		}
		set.attendees = attendeestore.NewPostgres(pool)
		set.ledger = checkinstore.NewPostgres(pool)

	case config.BackendSheets:
		client, err := sheets.New(ctx, cfg.Sheets)
		if err != nil {
			return nil, err
		}
		attendeeSheet := attendeestore.NewSheets(client, cfg.Sheets.AttendeesSheet)
		checkinSheet := checkinstore.NewSheets(client, cfg.Sheets.CheckinsSheet)
		if err := attendeeSheet.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		if err := checkinSheet.EnsureHeader(ctx); err != nil {
			return nil, err
		}
		set.attendees = attendeeSheet
		set.ledger = checkinSheet

	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	switch cfg.Storage.CheckinBackend {
	case "", cfg.Storage.Backend:
		// Ledger follows the primary backend.
	case config.BackendRedis:
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			set.close()
			return nil, err
		}
		set.closers = append(set.closers, func() { _ = client.Close() })
		set.ledger = checkinstore.NewRedis(client.Client)
	case config.BackendMemory:
		set.ledger = checkinstore.NewInMemoryStore()
		log.Warn("memory ledger selected; check-ins are lost on restart")
	default:
		set.close()
		return nil, fmt.Errorf("unsupported CHECKIN_BACKEND %q", cfg.Storage.CheckinBackend)
	}

	return set, nil
}
