package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/tallerhq/facturas/internal/config"
	"github.com/tallerhq/facturas/internal/logger"
	"github.com/tallerhq/facturas/migrations"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		logger.Fatalw("Failed to read migrations", "error", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, entry := range entries {
			sql, err := migrations.FS.ReadFile(entry.Name())
			if err != nil {
				logger.Fatalw("Failed to read migration", "file", entry.Name(), "error", err)
			}
			fmt.Printf("-- %s\n%s\n", entry.Name(), sql)
		}
		return
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	for _, entry := range entries {
		sql, err := migrations.FS.ReadFile(entry.Name())
		if err != nil {
			logger.Fatalw("Failed to read migration", "file", entry.Name(), "error", err)
		}
		if _, err := db.ExecContext(ctx, string(sql)); err != nil {
			logger.Fatalw("Failed to apply migration", "file", entry.Name(), "error", err)
		}
		logger.Infow("Applied migration", "file", entry.Name())
	}

	logger.Info("Migration completed successfully")
}
