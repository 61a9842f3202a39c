package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gridironlab/playcore/external/nflverse"
	"github.com/gridironlab/playcore/internal/config"
	"github.com/gridironlab/playcore/internal/domain/changelog"
	"github.com/gridironlab/playcore/internal/domain/play"
	"github.com/gridironlab/playcore/internal/infrastructure/repository/memory"
	"github.com/gridironlab/playcore/internal/infrastructure/repository/postgres"
	"github.com/gridironlab/playcore/internal/interfaces/httpapi"
	"github.com/gridironlab/playcore/internal/platform/logging"
	"github.com/gridironlab/playcore/internal/platform/resilience"
	"github.com/gridironlab/playcore/internal/playcache"
	"github.com/gridironlab/playcore/internal/usecase"
)

// App holds the wired HTTP server and the resources it owns.
type App struct {
	Server *http.Server

	db     *sqlx.DB
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	playRepo, changelogRepo, db, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	cache := playcache.New(playRepo, logger)
	if cfg.PreloadOnStart {
		opts := playcache.PreloadOptions{
			AllPlays: cfg.PreloadAllPlays,
			Years:    cfg.PreloadYears,
		}
		if err := cache.Preload(ctx, opts); err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("preload play cache: %w", err)
		}
		stats := cache.Stats()
		logger.InfoContext(ctx, "play cache preloaded",
			"plays", stats.TotalPlays,
			"games", stats.GamesCached,
			"context_entries", stats.ContextEntries,
		)
	}

	reconcileSvc := usecase.NewReconcileService(playRepo, changelogRepo, logger)
	lookupSvc := usecase.NewLookupService(cache)

	var importSvc *usecase.ImportService
	if cfg.NFLVerseEnabled {
		provider := nflverse.NewClient(nflverse.ClientConfig{
			BaseURL:    cfg.NFLVerseBaseURL,
			Token:      cfg.NFLVerseToken,
			Timeout:    cfg.NFLVerseTimeout,
			MaxRetries: cfg.NFLVerseMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NFLVerseCircuitEnabled,
				FailureThreshold: cfg.NFLVerseCircuitFailureCount,
				OpenTimeout:      cfg.NFLVerseCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NFLVerseCircuitHalfOpenMaxReq,
			},
		})
		importSvc = usecase.NewImportService(provider, playRepo, cache, reconcileSvc, logger)
		importSvc.SetDefaultWorkers(cfg.ImportMaxWorkers)
	}

	handler := httpapi.NewHandler(lookupSvc, reconcileSvc, importSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db, logger: logger}, nil
}

// Close releases resources the app owns. The HTTP server is shut down by the
// caller before Close.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (play.Repository, changelog.Repository, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Warn("DB_URL is empty, using in-memory repositories with seed data")
		return memory.NewPlayRepository(memory.SeedPlays()), memory.NewChangelogRepository(), nil, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}

	return postgres.NewPlayRepository(db), postgres.NewChangelogRepository(db), db, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("close database", "error", err)
	}
}
