package main

import (
	"context"
	"log"
	"time"

	"github.com/api-sage/somaluganda-remit/src/internal/adapter/repository/postgres"
	"github.com/api-sage/somaluganda-remit/src/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	log.Printf("migrations completed successfully, applied %d: %v", len(applied), applied)
}
