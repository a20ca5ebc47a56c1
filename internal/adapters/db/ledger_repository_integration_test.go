//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/adapters/db"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/test/helpers"
)

func TestEntryRepository_Integration(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	ctx := context.Background()
	logger := helpers.TestLogger()

	inwardRepo := db.NewEntryRepository(testDB.Database, db.InwardTable(), logger)
	expiryRepo := db.NewEntryRepository(testDB.Database, db.ExpiryTable(), logger)

	t.Run("insert_fills_id_and_created_at", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entry := helpers.CreateInwardEntry()
		err := inwardRepo.Insert(ctx, entry)
		require.NoError(t, err)

		assert.Equal(t, int64(1), entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("list_returns_newest_first", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		for i, name := range []string{"Tomato", "Wheat", "Maize"} {
			entry := helpers.CreateInwardEntry(func(e *domain.InwardEntry) {
				e.SeedName = name
			})
			require.NoError(t, inwardRepo.Insert(ctx, entry))
			// created_at has microsecond resolution, keep inserts apart
			if i < 2 {
				time.Sleep(10 * time.Millisecond)
			}
		}

		entries, err := inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "Maize", entries[0].SeedName)
		assert.Equal(t, "Wheat", entries[1].SeedName)
		assert.Equal(t, "Tomato", entries[2].SeedName)
	})

	t.Run("empty_ledger_lists_as_empty_slice", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entries, err := inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("absent_notes_scan_as_empty_string", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entry := helpers.CreateInwardEntry(func(e *domain.InwardEntry) {
			e.Notes = ""
		})
		require.NoError(t, inwardRepo.Insert(ctx, entry))

		entries, err := inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "", entries[0].Notes)
	})

	t.Run("date_round_trips_as_plain_string", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entry := helpers.CreateInwardEntry(func(e *domain.InwardEntry) {
			e.Date = "2024-03-01"
		})
		require.NoError(t, inwardRepo.Insert(ctx, entry))

		entries, err := inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "2024-03-01", entries[0].Date)
	})

	t.Run("quantity_preserves_fractional_values", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entry := helpers.CreateExpiryEntry(func(e *domain.ExpiryEntry) {
			e.Quantity = decimal.NewFromFloat(7.25)
		})
		require.NoError(t, expiryRepo.Insert(ctx, entry))

		entries, err := expiryRepo.ListAll(ctx, true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Quantity.Equal(decimal.NewFromFloat(7.25)))
	})

	t.Run("delete_reports_miss_without_error", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		entry := helpers.CreateInwardEntry()
		require.NoError(t, inwardRepo.Insert(ctx, entry))

		found, err := inwardRepo.DeleteByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.True(t, found)

		// Second delete of the same id is a consistent miss
		found, err = inwardRepo.DeleteByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("ledgers_are_independent", func(t *testing.T) {
		helpers.TruncateLedgerTables(t, testDB.Database)

		require.NoError(t, inwardRepo.Insert(ctx, helpers.CreateInwardEntry()))
		require.NoError(t, expiryRepo.Insert(ctx, helpers.CreateExpiryEntry()))

		inwardEntries, err := inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		expiryEntries, err := expiryRepo.ListAll(ctx, true)
		require.NoError(t, err)

		assert.Len(t, inwardEntries, 1)
		assert.Len(t, expiryEntries, 1)

		// Removing the expiry row leaves the inward ledger untouched
		found, err := expiryRepo.DeleteByID(ctx, expiryEntries[0].ID)
		require.NoError(t, err)
		assert.True(t, found)

		inwardEntries, err = inwardRepo.ListAll(ctx, true)
		require.NoError(t, err)
		assert.Len(t, inwardEntries, 1)
	})
}
