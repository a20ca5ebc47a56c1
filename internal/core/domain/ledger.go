// internal/core/domain/ledger.go
package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger identifies one of the four independent record collections.
type Ledger string

// Ledger constants
const (
	LedgerInward  Ledger = "inward"
	LedgerOutward Ledger = "outward"
	LedgerReturns Ledger = "returns"
	LedgerExpiry  Ledger = "expiry"
)

// Ledgers returns all ledgers in report order.
func Ledgers() []Ledger {
	return []Ledger{LedgerInward, LedgerOutward, LedgerReturns, LedgerExpiry}
}

// Label returns the human-readable name used in response messages.
func (l Ledger) Label() string {
	switch l {
	case LedgerInward:
		return "Inward"
	case LedgerOutward:
		return "Outward"
	case LedgerReturns:
		return "Return"
	case LedgerExpiry:
		return "Expiry"
	default:
		return string(l)
	}
}

// ErrInvalidEntry marks validation failures so callers can map them to a
// bad-request response instead of the opaque server-error path.
var ErrInvalidEntry = errors.New("invalid entry")

// Entry is implemented by all ledger entry types.
type Entry interface {
	Validate() error
	EntryID() int64
}

// InwardEntry records a shipment received into storage.
type InwardEntry struct {
	ID        int64           `json:"id"`
	SeedName  string          `json:"seedName"`
	Quantity  decimal.Decimal `json:"quantity"`
	Party     string          `json:"party"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// OutwardEntry records a shipment dispatched from storage.
type OutwardEntry struct {
	ID        int64           `json:"id"`
	SeedName  string          `json:"seedName"`
	Quantity  decimal.Decimal `json:"quantity"`
	Party     string          `json:"party"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ReturnEntry records stock sent back by a party.
type ReturnEntry struct {
	ID        int64           `json:"id"`
	SeedName  string          `json:"seedName"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Date      string          `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ExpiryEntry records stock that reached its expiry date and the action taken.
type ExpiryEntry struct {
	ID         int64           `json:"id"`
	SeedName   string          `json:"seedName"`
	Quantity   decimal.Decimal `json:"quantity"`
	ExpiryDate string          `json:"expiryDate"`
	Action     string          `json:"action"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Validate checks the fields the inward table declares NOT NULL.
func (e InwardEntry) Validate() error {
	if e.SeedName == "" {
		return fmt.Errorf("seedName is required")
	}
	if e.Party == "" {
		return fmt.Errorf("party is required")
	}
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if e.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// Validate checks the fields the outward table declares NOT NULL.
func (e OutwardEntry) Validate() error {
	if e.SeedName == "" {
		return fmt.Errorf("seedName is required")
	}
	if e.Party == "" {
		return fmt.Errorf("party is required")
	}
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if e.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// Validate checks the fields the returns table declares NOT NULL.
func (e ReturnEntry) Validate() error {
	if e.SeedName == "" {
		return fmt.Errorf("seedName is required")
	}
	if e.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if e.Date == "" {
		return fmt.Errorf("date is required")
	}
	if e.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// Validate checks the fields the expiry table declares NOT NULL.
func (e ExpiryEntry) Validate() error {
	if e.SeedName == "" {
		return fmt.Errorf("seedName is required")
	}
	if e.ExpiryDate == "" {
		return fmt.Errorf("expiryDate is required")
	}
	if e.Action == "" {
		return fmt.Errorf("action is required")
	}
	if e.Quantity.IsNegative() {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// EntryID returns the surrogate id assigned on insert.
func (e InwardEntry) EntryID() int64 { return e.ID }

// EntryID returns the surrogate id assigned on insert.
func (e OutwardEntry) EntryID() int64 { return e.ID }

// EntryID returns the surrogate id assigned on insert.
func (e ReturnEntry) EntryID() int64 { return e.ID }

// EntryID returns the surrogate id assigned on insert.
func (e ExpiryEntry) EntryID() int64 { return e.ID }

// LedgerReport is the combined snapshot of all four ledgers. The slices are
// never nil so an empty ledger serializes as an empty array.
type LedgerReport struct {
	Inward  []InwardEntry  `json:"inward"`
	Outward []OutwardEntry `json:"outward"`
	Returns []ReturnEntry  `json:"returns"`
	Expiry  []ExpiryEntry  `json:"expiry"`
}

// NewLedgerReport returns a report with empty, non-nil collections.
func NewLedgerReport() *LedgerReport {
	return &LedgerReport{
		Inward:  []InwardEntry{},
		Outward: []OutwardEntry{},
		Returns: []ReturnEntry{},
		Expiry:  []ExpiryEntry{},
	}
}
