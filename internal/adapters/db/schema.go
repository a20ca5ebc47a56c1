// internal/adapters/db/schema.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ledgerDDL holds the create-if-absent statements for the four ledger
// tables. Every field except notes is NOT NULL; created_at is assigned by
// the datastore and is the listing sort key.
var ledgerDDL = []string{
	`CREATE TABLE IF NOT EXISTS inward_entries (
		id          BIGSERIAL PRIMARY KEY,
		seed_name   TEXT NOT NULL,
		quantity    NUMERIC(12,2) NOT NULL,
		party       TEXT NOT NULL,
		entry_date  DATE NOT NULL,
		notes       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS outward_entries (
		id          BIGSERIAL PRIMARY KEY,
		seed_name   TEXT NOT NULL,
		quantity    NUMERIC(12,2) NOT NULL,
		party       TEXT NOT NULL,
		entry_date  DATE NOT NULL,
		notes       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS return_entries (
		id          BIGSERIAL PRIMARY KEY,
		seed_name   TEXT NOT NULL,
		quantity    NUMERIC(12,2) NOT NULL,
		reason      TEXT NOT NULL,
		entry_date  DATE NOT NULL,
		notes       TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expiry_entries (
		id          BIGSERIAL PRIMARY KEY,
		seed_name   TEXT NOT NULL,
		quantity    NUMERIC(12,2) NOT NULL,
		expiry_date DATE NOT NULL,
		action      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates the four ledger tables if they do not exist yet.
// The statements are idempotent, so running it on every start is safe.
func EnsureSchema(ctx context.Context, db *Database, logger *slog.Logger) error {
	for _, stmt := range ledgerDDL {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure ledger schema: %w", err)
		}
	}

	logger.InfoContext(ctx, "ledger schema ensured",
		slog.Int("tables", len(ledgerDDL)))

	return nil
}

// EnsureSchemaWithRetry runs EnsureSchema with retry logic, for starts that
// race the datastore coming up. Callers treat the final error as fatal.
func EnsureSchemaWithRetry(ctx context.Context, db *Database, logger *slog.Logger, maxRetries int) error {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			waitTime := time.Duration(i) * time.Second * 2
			logger.InfoContext(ctx, "retrying schema creation",
				slog.Int("attempt", i+1),
				slog.Duration("wait", waitTime))
			time.Sleep(waitTime)
		}

		if err := EnsureSchema(ctx, db, logger); err != nil {
			lastErr = err
			logger.ErrorContext(ctx, "schema creation failed",
				slog.String("error", err.Error()),
				slog.Int("attempt", i+1))
			continue
		}

		return nil
	}

	return fmt.Errorf("schema creation failed after %d attempts: %w", maxRetries, lastErr)
}
