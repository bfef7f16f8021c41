// Command seeder loads a CC-CEDICT dictionary and an HSK list into
// PostgreSQL. It is intended to be run offline, not as part of the main
// server. Without dataset paths it loads the dictionary bundled into the
// binary.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: cedict,hsk)
//	--dry-run        parse datasets without writing to DB
//	--migrate        apply pending migrations before seeding
//	--seeder-config  path to seeder YAML config file
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/zhdict/internal/adapter/postgres"
	"github.com/heartmarshall/zhdict/internal/adapter/postgres/wordentry"
	"github.com/heartmarshall/zhdict/internal/app"
	"github.com/heartmarshall/zhdict/internal/app/seeder"
	"github.com/heartmarshall/zhdict/internal/config"
)

// Compile-time interface assertions.
var (
	_ seeder.WordEntryBulkRepo = (*wordentry.Repo)(nil)
	_ seeder.TxRunner          = (*postgres.TxManager)(nil)
)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse datasets without writing to DB")
	migrateFlag := flag.Bool("migrate", false, "apply pending migrations before seeding")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	flag.Parse()

	// Load app config (for DB connection).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	if appCfg.Database.DSN == "" {
		logger.Error("database.dsn is required for seeding")
		os.Exit(1)
	}

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	if *migrateFlag {
		applied, err := postgres.Migrate(ctx, appCfg.Database.DSN, logger)
		if err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations done", slog.Int("applied", applied))
	}

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)
	repo := wordentry.New(pool)

	pipeline := seeder.NewPipeline(logger, repo, txm, *seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
