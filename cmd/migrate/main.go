package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/c2demo/c2-backend/internal/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	flags = flag.NewFlagSet("migrate", flag.ExitOnError)
	dir   = flags.String("dir", "sql", "directory with migration files")
)

func main() {
	flags.Parse(os.Args[1:])
	args := flags.Args()

	if len(args) < 1 {
		log.Fatal("Usage: migrate COMMAND\n\nCommands:\n  up\n  down\n  status")
	}

	// The migration runner never falls back to a default DSN.
	dsn := os.Getenv("C2_POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("C2_POSTGRES_DSN environment variable is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	command := args[0]
	switch command {
	case "up":
		if err := goose.Up(db, *dir); err != nil {
			log.Fatalf("Migration up failed: %v", err)
		}
		if err := recordHistory(db, *dir); err != nil {
			log.Fatalf("Recording migration history failed: %v", err)
		}
	case "down":
		if err := goose.Down(db, *dir); err != nil {
			log.Fatalf("Migration down failed: %v", err)
		}
	case "status":
		if err := goose.Status(db, *dir); err != nil {
			log.Fatalf("Migration status failed: %v", err)
		}
	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func recordHistory(db *sql.DB, dir string) error {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()

	ctx := context.Background()
	if err := migrations.EnsureHistoryTable(ctx, db); err != nil {
		return err
	}
	return migrations.RecordHistory(ctx, db, dir, logger)
}
