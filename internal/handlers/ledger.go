// internal/handlers/ledger.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
)

// EntryHandler serves the three routes of one ledger. All four ledgers share
// this implementation, parameterized by entry type; only the route prefix
// and the message label differ.
type EntryHandler[E domain.Entry] struct {
	ledger  domain.Ledger
	service ports.EntryService[E]
	logger  *slog.Logger
}

// NewEntryHandler creates a handler bound to one ledger.
func NewEntryHandler[E domain.Entry](ledger domain.Ledger, service ports.EntryService[E], logger *slog.Logger) *EntryHandler[E] {
	return &EntryHandler[E]{
		ledger:  ledger,
		service: service,
		logger:  logger.With(slog.String("handler", string(ledger))),
	}
}

// Create handles POST /api/{ledger}
func (h *EntryHandler[E]) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var entry E
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Add(ctx, &entry); err != nil {
		if errors.Is(err, domain.ErrInvalidEntry) {
			respondError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.ErrorContext(ctx, "failed to add ledger entry",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError,
			fmt.Sprintf("Failed to add %s entry", h.ledger))
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]any{
		"message": h.ledger.Label() + " entry added",
		"id":      entry.EntryID(),
	})
}

// List handles GET /api/{ledger}
func (h *EntryHandler[E]) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	entries, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list ledger entries",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError,
			fmt.Sprintf("Failed to list %s entries", h.ledger))
		return
	}

	respondJSON(w, h.logger, http.StatusOK, entries)
}

// Delete handles DELETE /api/{ledger}/{id}
func (h *EntryHandler[E]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idStr := r.PathValue("id")

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	found, err := h.service.Delete(ctx, id)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete ledger entry",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError,
			fmt.Sprintf("Failed to delete %s entry", h.ledger))
		return
	}

	if !found {
		respondMessage(w, h.logger, http.StatusNotFound, "Entry not found")
		return
	}

	respondMessage(w, h.logger, http.StatusOK, h.ledger.Label()+" entry deleted")
}
