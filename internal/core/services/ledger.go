// internal/core/services/ledger.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
)

// ReportCacheKey is the cache key for the combined report snapshot. Every
// successful mutation on any ledger deletes it.
const ReportCacheKey = "report:combined"

// EntryService handles the business logic for a single ledger. All four
// ledgers share this implementation, parameterized by entry type.
type EntryService[E domain.Entry] struct {
	ledger domain.Ledger
	repo   ports.EntryRepository[E]
	cache  ports.CacheRepository
	logger *slog.Logger
}

// Statically assert that *EntryService implements the EntryService port.
var _ ports.EntryService[domain.InwardEntry] = (*EntryService[domain.InwardEntry])(nil)

// NewEntryService creates a service bound to one ledger. The cache is
// optional; a nil cache disables report snapshot invalidation.
func NewEntryService[E domain.Entry](ledger domain.Ledger, repo ports.EntryRepository[E], cache ports.CacheRepository, logger *slog.Logger) *EntryService[E] {
	return &EntryService[E]{
		ledger: ledger,
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("service", string(ledger))),
	}
}

// Add validates and persists a new entry, filling its id and timestamp.
func (s *EntryService[E]) Add(ctx context.Context, entry *E) error {
	if err := (*entry).Validate(); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidEntry, err.Error())
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("failed to add %s entry: %w", s.ledger, err)
	}

	s.invalidateReport(ctx)

	s.logger.InfoContext(ctx, "ledger entry added",
		slog.String("ledger", string(s.ledger)))

	return nil
}

// List returns all entries of the ledger, newest first.
func (s *EntryService[E]) List(ctx context.Context) ([]E, error) {
	entries, err := s.repo.ListAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", s.ledger, err)
	}
	return entries, nil
}

// Delete removes one entry by id. A miss is reported via the bool, not an
// error, so repeated deletes of the same id behave identically.
func (s *EntryService[E]) Delete(ctx context.Context, id int64) (bool, error) {
	found, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s entry: %w", s.ledger, err)
	}

	if found {
		s.invalidateReport(ctx)
	}

	return found, nil
}

// invalidateReport drops the cached report snapshot after a mutation.
// Cache failures degrade to uncached reads and are never surfaced.
func (s *EntryService[E]) invalidateReport(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, ReportCacheKey); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate report cache",
			slog.String("error", err.Error()))
	}
}

// ReportService assembles the combined snapshot of all four ledgers.
type ReportService struct {
	inward  ports.EntryRepository[domain.InwardEntry]
	outward ports.EntryRepository[domain.OutwardEntry]
	returns ports.EntryRepository[domain.ReturnEntry]
	expiry  ports.EntryRepository[domain.ExpiryEntry]
	cache   ports.CacheRepository
	ttl     time.Duration
	logger  *slog.Logger
}

// Statically assert that *ReportService implements the ReportService port.
var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates the report service over the four ledger
// repositories. The cache is optional.
func NewReportService(
	inward ports.EntryRepository[domain.InwardEntry],
	outward ports.EntryRepository[domain.OutwardEntry],
	returns ports.EntryRepository[domain.ReturnEntry],
	expiry ports.EntryRepository[domain.ExpiryEntry],
	cache ports.CacheRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		inward:  inward,
		outward: outward,
		returns: returns,
		expiry:  expiry,
		cache:   cache,
		ttl:     ttl,
		logger:  logger.With(slog.String("service", "report")),
	}
}

// Report returns the current contents of all four ledgers. The four reads
// are independent, not wrapped in a transaction; a write landing between
// them may appear in one collection's snapshot and not another's. Any
// single read failing aborts the whole report.
func (s *ReportService) Report(ctx context.Context) (*domain.LedgerReport, error) {
	if s.cache != nil {
		cached := domain.NewLedgerReport()
		if err := s.cache.Get(ctx, ReportCacheKey, cached); err == nil {
			return cached, nil
		}
	}

	report := domain.NewLedgerReport()

	var err error
	if report.Inward, err = s.inward.ListAll(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to read inward ledger: %w", err)
	}
	if report.Outward, err = s.outward.ListAll(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to read outward ledger: %w", err)
	}
	if report.Returns, err = s.returns.ListAll(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to read returns ledger: %w", err)
	}
	if report.Expiry, err = s.expiry.ListAll(ctx, false); err != nil {
		return nil, fmt.Errorf("failed to read expiry ledger: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, ReportCacheKey, report, s.ttl); err != nil {
			s.logger.WarnContext(ctx, "failed to cache report snapshot",
				slog.String("error", err.Error()))
		}
	}

	s.logger.DebugContext(ctx, "report assembled",
		slog.Int("inward", len(report.Inward)),
		slog.Int("outward", len(report.Outward)),
		slog.Int("returns", len(report.Returns)),
		slog.Int("expiry", len(report.Expiry)))

	return report, nil
}
