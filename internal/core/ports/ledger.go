// internal/core/ports/ledger.go
package ports

import (
	"context"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
)

// EntryRepository defines the persistence port shared by all four ledgers.
// One instance exists per ledger table; the database adapter parameterizes
// it with an entity descriptor.
type EntryRepository[E any] interface {
	// Insert persists the entry and fills its surrogate id and creation
	// timestamp from the datastore.
	Insert(ctx context.Context, entry *E) error

	// ListAll returns every row of the ledger. When ordered is true rows come
	// back newest first; the report path passes false and takes whatever
	// order the datastore yields.
	ListAll(ctx context.Context, ordered bool) ([]E, error)

	// DeleteByID removes the row with the given surrogate key. It reports
	// whether a row was actually removed; a miss is not an error.
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

// EntryService defines the business port for a single ledger.
type EntryService[E domain.Entry] interface {
	Add(ctx context.Context, entry *E) error
	List(ctx context.Context) ([]E, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ReportService assembles the combined snapshot over all four ledgers.
type ReportService interface {
	Report(ctx context.Context) (*domain.LedgerReport, error)
}
