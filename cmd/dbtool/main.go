package main

import (
	"context"
	"fmt"
	"itinerary-route-service/internal/adapters/cache"
	"itinerary-route-service/internal/adapters/repositories"
	"itinerary-route-service/internal/config"
	"itinerary-route-service/internal/dataset"
	"itinerary-route-service/internal/platform/db"
	"itinerary-route-service/internal/platform/logger"
	"itinerary-route-service/internal/platform/sqlitedb"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const usage = `usage: dbtool [init-sqlite|init-postgres]

  init-sqlite    create the SQLite schema at DB_PATH and load SEED_PATH (or the bundled dataset)
  init-postgres  create the transit cache table at DATABASE_URL

With no command, every configured target is initialized.`

func main() {
	envErr := godotenv.Load()

	logCfg := logger.DefaultConfig()
	logCfg.Level = config.Get("LOG_LEVEL", "info")
	logger.InitLogger(logCfg)

	if envErr != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var err error
	switch cmd {
	case "init-sqlite":
		err = initSQLite()
	case "init-postgres":
		err = initPostgres(ctx, true)
	case "":
		if err = initSQLite(); err == nil {
			err = initPostgres(ctx, false)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("dbtool failed", "command", cmd, "error", err)
	}
}

func initSQLite() error {
	path := config.Get("DB_PATH", "data/app.db")
	sqlDB, err := sqlitedb.Open(path)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var ds *dataset.Dataset
	if seed := config.Get("SEED_PATH", ""); seed != "" {
		ds, err = dataset.ReadFile(seed)
	} else {
		ds, err = dataset.Default()
	}
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}

	logger.Info("initializing sqlite schema", "path", path)
	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	if err := repositories.SeedDataset(sqlDB, ds); err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	logger.Info("sqlite ready", "spots", len(ds.Spots), "stations", len(ds.Stations))
	return nil
}

func initPostgres(ctx context.Context, required bool) error {
	url := config.Get("DATABASE_URL", "")
	if url == "" {
		if required {
			return fmt.Errorf("init postgres: DATABASE_URL is required")
		}
		logger.Info("DATABASE_URL not set, skipping postgres")
		return nil
	}

	pg, err := db.Open(ctx, url)
	if err != nil {
		return err
	}
	defer pg.Close()

	logger.Info("initializing postgres transit cache")
	if err := cache.InitSQLTransitCacheSchema(ctx, pg); err != nil {
		return err
	}
	logger.Info("postgres ready")
	return nil
}
