// internal/adapters/db/ledger_tables.go
package db

import (
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
)

// EntryTable describes one ledger table for the generic repository: the
// insertable columns, the full select list, and how an entry's fields map
// to statement arguments and scan destinations. Dates are selected as text
// since the service treats them as opaque strings end to end.
type EntryTable[E any] struct {
	Ledger  domain.Ledger
	Name    string
	Insert  []string
	Columns []string
	Args    func(e *E) []any
	Dest    func(e *E) []any
}

// InwardTable returns the descriptor for the inward ledger.
func InwardTable() EntryTable[domain.InwardEntry] {
	return EntryTable[domain.InwardEntry]{
		Ledger: domain.LedgerInward,
		Name:   "inward_entries",
		Insert: []string{"seed_name", "quantity", "party", "entry_date", "notes"},
		Columns: []string{
			"id", "seed_name", "quantity", "party",
			"entry_date::text", "COALESCE(notes, '')", "created_at",
		},
		Args: func(e *domain.InwardEntry) []any {
			return []any{e.SeedName, e.Quantity, e.Party, e.Date, e.Notes}
		},
		Dest: func(e *domain.InwardEntry) []any {
			return []any{&e.ID, &e.SeedName, &e.Quantity, &e.Party, &e.Date, &e.Notes, &e.CreatedAt}
		},
	}
}

// OutwardTable returns the descriptor for the outward ledger.
func OutwardTable() EntryTable[domain.OutwardEntry] {
	return EntryTable[domain.OutwardEntry]{
		Ledger: domain.LedgerOutward,
		Name:   "outward_entries",
		Insert: []string{"seed_name", "quantity", "party", "entry_date", "notes"},
		Columns: []string{
			"id", "seed_name", "quantity", "party",
			"entry_date::text", "COALESCE(notes, '')", "created_at",
		},
		Args: func(e *domain.OutwardEntry) []any {
			return []any{e.SeedName, e.Quantity, e.Party, e.Date, e.Notes}
		},
		Dest: func(e *domain.OutwardEntry) []any {
			return []any{&e.ID, &e.SeedName, &e.Quantity, &e.Party, &e.Date, &e.Notes, &e.CreatedAt}
		},
	}
}

// ReturnsTable returns the descriptor for the returns ledger.
func ReturnsTable() EntryTable[domain.ReturnEntry] {
	return EntryTable[domain.ReturnEntry]{
		Ledger: domain.LedgerReturns,
		Name:   "return_entries",
		Insert: []string{"seed_name", "quantity", "reason", "entry_date", "notes"},
		Columns: []string{
			"id", "seed_name", "quantity", "reason",
			"entry_date::text", "COALESCE(notes, '')", "created_at",
		},
		Args: func(e *domain.ReturnEntry) []any {
			return []any{e.SeedName, e.Quantity, e.Reason, e.Date, e.Notes}
		},
		Dest: func(e *domain.ReturnEntry) []any {
			return []any{&e.ID, &e.SeedName, &e.Quantity, &e.Reason, &e.Date, &e.Notes, &e.CreatedAt}
		},
	}
}

// ExpiryTable returns the descriptor for the expiry ledger.
func ExpiryTable() EntryTable[domain.ExpiryEntry] {
	return EntryTable[domain.ExpiryEntry]{
		Ledger: domain.LedgerExpiry,
		Name:   "expiry_entries",
		Insert: []string{"seed_name", "quantity", "expiry_date", "action"},
		Columns: []string{
			"id", "seed_name", "quantity",
			"expiry_date::text", "action", "created_at",
		},
		Args: func(e *domain.ExpiryEntry) []any {
			return []any{e.SeedName, e.Quantity, e.ExpiryDate, e.Action}
		},
		Dest: func(e *domain.ExpiryEntry) []any {
			return []any{&e.ID, &e.SeedName, &e.Quantity, &e.ExpiryDate, &e.Action, &e.CreatedAt}
		},
	}
}
