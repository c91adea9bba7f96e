package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/c2demo/c2-backend/internal/config"
	"github.com/c2demo/c2-backend/internal/log"
	"github.com/c2demo/c2-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := log.NewSugar(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{DSN: cfg.Database.PostgresDSN}, logger)
	if err != nil {
		logger.Fatalw("Failed to open store", "error", err)
	}
	defer st.Close()

	if err := st.Seed(ctx); err != nil {
		logger.Fatalw("Seeding failed", "error", err)
	}

	logger.Infow("Demo data seeded")
}
