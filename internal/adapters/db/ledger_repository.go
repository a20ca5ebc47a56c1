// internal/adapters/db/ledger_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
)

// entryRepository implements ports.EntryRepository for one ledger table.
// All four ledgers share this implementation, parameterized by EntryTable.
type entryRepository[E any] struct {
	db     *Database
	table  EntryTable[E]
	logger *slog.Logger
}

// NewEntryRepository creates a repository bound to one ledger table.
func NewEntryRepository[E any](database *Database, table EntryTable[E], logger *slog.Logger) ports.EntryRepository[E] {
	return &entryRepository[E]{
		db:     database,
		table:  table,
		logger: logger.With(slog.String("repository", string(table.Ledger))),
	}
}

// Insert persists a new entry and fills its id and creation timestamp from
// the RETURNING clause. Values are bound positionally, never interpolated.
func (r *entryRepository[E]) Insert(ctx context.Context, entry *E) error {
	query, args, err := squirrel.Insert(r.table.Name).
		Columns(r.table.Insert...).
		Values(r.table.Args(entry)...).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	dest := r.table.Dest(entry)
	// id is the first destination, created_at the last.
	if err := r.db.QueryRow(ctx, query, args...).Scan(dest[0], dest[len(dest)-1]); err != nil {
		return fmt.Errorf("failed to insert %s entry: %w", r.table.Ledger, err)
	}

	r.logger.DebugContext(ctx, "ledger entry inserted",
		slog.String("table", r.table.Name))

	return nil
}

// ListAll retrieves every row of the ledger. The per-ledger list endpoints
// ask for newest-first ordering; the report path takes datastore order.
func (r *entryRepository[E]) ListAll(ctx context.Context, ordered bool) ([]E, error) {
	qb := squirrel.Select(r.table.Columns...).
		From(r.table.Name).
		PlaceholderFormat(squirrel.Dollar)
	if ordered {
		qb = qb.OrderBy("created_at DESC")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s entries: %w", r.table.Ledger, err)
	}
	defer rows.Close()

	entries := make([]E, 0)
	for rows.Next() {
		var entry E
		if err := rows.Scan(r.table.Dest(&entry)...); err != nil {
			return nil, fmt.Errorf("failed to scan %s entry: %w", r.table.Ledger, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

// DeleteByID removes one row by surrogate key. Zero rows affected is a
// normal miss, not an error.
func (r *entryRepository[E]) DeleteByID(ctx context.Context, id int64) (bool, error) {
	query, args, err := squirrel.Delete(r.table.Name).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s entry: %w", r.table.Ledger, err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	r.logger.InfoContext(ctx, "ledger entry deleted",
		slog.String("table", r.table.Name),
		slog.Int64("id", id))

	return true, nil
}
