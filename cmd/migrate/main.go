package main

// Apply, roll back or inspect the snapshot schema:
//   go run ./cmd/migrate            # up
//   go run ./cmd/migrate -down      # revert the latest migration
//   go run ./cmd/migrate -version   # print the schema version

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cv-builder/internal/shared/config"
	"cv-builder/internal/shared/storage/db"
	"cv-builder/internal/shared/telemetry"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration")
	version := flag.Bool("version", false, "print the current schema version and exit")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect database: %v\n", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if !*version {
		run := db.RunMigrations
		if *down {
			run = db.RollbackMigration
		}
		if err := run(ctx, sqlDB); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	v, err := db.MigrationVersion(ctx, sqlDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	telemetry.Info("db.schema_version", map[string]any{"version": v})
}
