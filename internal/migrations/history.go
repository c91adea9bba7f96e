// Package migrations records applied schema migrations into the
// "c2MigrationHistory" table, one row per migration file with a sha256
// content checksum. goose owns applying the migrations; this is the
// deploy-time audit trail alongside it.
package migrations

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

const ensureTableQuery = `
	CREATE TABLE IF NOT EXISTS "c2MigrationHistory" (
		id SERIAL PRIMARY KEY,
		name VARCHAR(256) NOT NULL,
		checksum VARCHAR(64) NOT NULL,
		executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP NOT NULL
	)
`

// Checksum returns the hex-encoded sha256 digest of a migration file's
// content.
func Checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// EnsureHistoryTable creates the history table when it does not exist.
func EnsureHistoryTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ensureTableQuery); err != nil {
		return fmt.Errorf("failed to ensure migration history table: %w", err)
	}
	return nil
}

// RecordHistory logs every .sql file in dir into the history table, once.
// Files already recorded by name are skipped; new files are stored with
// their current content checksum.
func RecordHistory(ctx context.Context, db *sql.DB, dir string, logger *zap.SugaredLogger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}

		var count int
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM "c2MigrationHistory" WHERE name = $1`, name).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration history for %s: %w", name, err)
		}
		if count > 0 {
			logger.Debugw("Migration already recorded", "name", name)
			continue
		}

		_, err = db.ExecContext(ctx,
			`INSERT INTO "c2MigrationHistory" (name, checksum) VALUES ($1, $2)`,
			name, Checksum(content))
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", name, err)
		}
		logger.Infow("Recorded migration", "name", name)
	}

	return nil
}
