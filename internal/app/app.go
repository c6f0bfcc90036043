package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/morbidleague/deadpool/internal/config"
	"github.com/morbidleague/deadpool/internal/domain/person"
	"github.com/morbidleague/deadpool/internal/domain/player"
	"github.com/morbidleague/deadpool/internal/infrastructure/account/gatekeeper"
	cacherepo "github.com/morbidleague/deadpool/internal/infrastructure/repository/cache"
	"github.com/morbidleague/deadpool/internal/infrastructure/repository/memory"
	"github.com/morbidleague/deadpool/internal/infrastructure/repository/postgres"
	"github.com/morbidleague/deadpool/internal/interfaces/httpapi"
	"github.com/morbidleague/deadpool/internal/platform/cache"
	idgen "github.com/morbidleague/deadpool/internal/platform/id"
	"github.com/morbidleague/deadpool/internal/platform/logging"
	"github.com/morbidleague/deadpool/internal/usecase"
)

// NewHTTPServer wires storage, services, and transport into a ready-to-run
// server. The returned cleanup closes whatever the wiring opened (today the
// postgres pool) and must be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = slog.Default()
	}

	playerRepo, personRepo, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		playerRepo = cacherepo.NewPlayerRepository(playerRepo, store)
		personRepo = cacherepo.NewPersonRepository(personRepo, store)
	}

	appLogger := logging.Default()

	leaderboardSvc := usecase.NewLeaderboardService(playerRepo, store)
	badgeSvc := usecase.NewBadgeService(playerRepo, store, appLogger)
	playerSvc := usecase.NewPlayerService(playerRepo)
	statsSvc := usecase.NewStatsService(playerRepo, store, cfg.StatsWorkers)
	adminSvc := usecase.NewAdminService(playerRepo, personRepo, store, idgen.NewRandomGenerator(), appLogger)

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		cfg.GatekeeperAdminKey,
		gatekeeper.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMax,
		},
		logger,
	)

	handler := httpapi.NewHandler(leaderboardSvc, badgeSvc, playerSvc, statsSvc, adminSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup(ctx)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (player.Repository, person.Repository, func(context.Context) error, error) {
	noopCleanup := func(context.Context) error { return nil }

	switch cfg.Storage {
	case config.StoragePostgres:
		dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := otelsqlx.Connect("postgres", dsn,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, nil, fmt.Errorf("bootstrap seed: %w", err)
			}
		}

		logger.Info("storage ready", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))

		cleanup := func(context.Context) error { return db.Close() }
		return postgres.NewPlayerRepository(db), postgres.NewPersonRepository(db), cleanup, nil

	case config.StorageMemory:
		var players []player.Player
		var persons []person.Person
		if cfg.SeedDemoData {
			players = memory.SeedPlayers()
			persons = memory.SeedPersons()
		}

		logger.Info("storage ready", "driver", config.StorageMemory, "seeded", cfg.SeedDemoData)

		return memory.NewPlayerRepository(players), memory.NewPersonRepository(persons), noopCleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage)
	}
}
