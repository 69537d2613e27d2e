package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/adapters/repositories"
	"itinerary-route-service/internal/api"
	"itinerary-route-service/internal/config"
	"itinerary-route-service/internal/dataset"
	"itinerary-route-service/internal/metro"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/platform/sqlitedb"
	"itinerary-route-service/internal/ports"
	"itinerary-route-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It loads reference data into SQLite, builds the metro graph and wires the
// optional caches behind ports before starting the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.FilePath = cfg.LogFile
	logger.InitLogger(logCfg)

	if envErr != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	sqlDB, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Reference data is reloaded on every start so edits to the seed take effect.
	ds, err := initAndSeed(sqlDB, cfg.SeedPath)
	if err != nil {
		return err
	}

	metroRepo := repositories.NewSqliteMetroRepository(sqlDB)
	graph, err := loadGraph(ctx, metroRepo, cfg.FlagshipLineID)
	if err != nil {
		return err
	}

	synth := cache.NewLRUTransitDetailer(services.NewTransitSynthesizer(graph), cfg.TransitLRUSize, 0)

	opts := []services.PlannerOption{}

	var transitCache ports.TransitCache = cache.NewSqliteTransitCache(sqlDB)
	if cfg.DatabaseURL != "" {
		pg, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		if err := cache.InitSQLTransitCacheSchema(ctx, pg); err != nil {
			return err
		}
		transitCache = cache.NewSQLTransitCache(pg)
		logger.Info("transit cache", "backend", "postgres")
	}
	// The Postgres cache outlives reseeds, so keys carry the data version.
	version := ds.Fingerprint() + "/" + graph.FlagshipLineID()
	opts = append(opts, services.WithTransitCache(transitCache, cache.VersionedTransitKey(version)))

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, route cache disabled", "addr", cfg.RedisAddr, "error", err)
		} else {
			opts = append(opts, services.WithRouteCache(cache.NewRedisRouteCache(client, cfg.RouteCacheTTL), cache.RouteKey))
			logger.Info("route cache", "backend", "redis", "addr", cfg.RedisAddr, "ttl", cfg.RouteCacheTTL.String())
		}
	}

	spots := repositories.NewSqliteSpotRepository(sqlDB)
	router := api.NewRouter(api.Deps{
		Spots:   spots,
		Graph:   graph,
		Planner: services.NewItineraryPlanner(spots, synth, opts...),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	hits, misses := synth.Stats()
	logger.Info("transit lru", "hits", hits, "misses", misses)
	return nil
}

func initAndSeed(db *sql.DB, seedPath string) (*dataset.Dataset, error) {
	ds, err := loadDataset(seedPath)
	if err != nil {
		return nil, fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.InitSchema(db); err != nil {
		return nil, fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedDataset(db, ds); err != nil {
		return nil, fmt.Errorf("init and seed: %w", err)
	}

	logger.Info("reference data loaded",
		"lines", len(ds.Lines), "stations", len(ds.Stations),
		"accommodations", len(ds.Accommodations), "spots", len(ds.Spots),
		"fingerprint", ds.Fingerprint())
	return ds, nil
}

func loadDataset(seedPath string) (*dataset.Dataset, error) {
	if seedPath == "" {
		return dataset.Default()
	}
	return dataset.ReadFile(seedPath)
}

func loadGraph(ctx context.Context, repo ports.MetroRepository, flagship string) (*metro.Graph, error) {
	lines, err := repo.ListLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("load metro graph: %w", err)
	}
	stations, err := repo.ListStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load metro graph: %w", err)
	}
	g, err := metro.NewGraph(lines, stations, metro.WithFlagshipLine(flagship))
	if err != nil {
		return nil, fmt.Errorf("load metro graph: %w", err)
	}
	return g, nil
}
