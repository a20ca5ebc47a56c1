// internal/handlers/report.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
)

// ReportHandler serves the combined view of all four ledgers.
type ReportHandler struct {
	service ports.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ports.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "report")),
	}
}

// Combined handles GET /api/reports
func (h *ReportHandler) Combined(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.service.Report(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble report",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to build report")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, report)
}
