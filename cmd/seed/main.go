package main

import (
	"context"
	"flag"
	"log"

	"fitconsole/internal/config"
	"fitconsole/internal/repository/postgres"
	"fitconsole/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	schemaOnly := flag.Bool("schema-only", false, "Only apply migrations, don't seed data")
	reset := flag.Bool("reset", false, "Delete the demo company before seeding (fresh start)")
	companyID := flag.String("company", "", "Company id to seed (default DEMO_COMPANY_ID)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	if *companyID == "" {
		*companyID = cfg.DemoCompanyID
	}

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *reset {
		log.Fatalf("BLOCKED: --reset is not allowed in the prod environment")
	}
	if cfg.DatabaseURL == "" {
		log.Fatalf("DATABASE_URL is required")
	}

	logger, closeLog, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()

	ctx := context.Background()

	logger.Info("applying migrations", "environment", cfg.Environment)
	if err := postgres.Migrate(ctx, cfg.DatabaseURL, logger); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if *schemaOnly {
		logger.Info("schema ready (schema-only mode)")
		return
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	seeder := seed.NewSeeder(postgres.NewStore(pool, logger), logger)

	if *reset {
		if err := seeder.Reset(ctx, *companyID); err != nil {
			log.Fatalf("Failed to reset company: %v", err)
		}
	}

	if err := seeder.Seed(ctx, seed.DemoSnapshot(*companyID)); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	logger.Info("seeding complete", "company_id", *companyID)
}
