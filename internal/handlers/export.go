// internal/handlers/export.go
package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
)

// ExportHandler produces downloadable snapshots of the combined report.
type ExportHandler struct {
	service ports.ReportService
	logger  *slog.Logger
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service ports.ReportService, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "export")),
	}
}

// Export handles GET /api/reports/export. The format query parameter selects
// the output: xlsx (default) or json.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	report, err := h.service.Report(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to assemble report for export",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to build report")
		return
	}

	switch format {
	case "xlsx":
		h.exportExcel(w, r, report)
	case "json":
		h.exportJSON(w, r, report)
	default:
		respondError(w, h.logger, http.StatusBadRequest, "Unsupported export format")
	}
}

func (h *ExportHandler) exportExcel(w http.ResponseWriter, r *http.Request, report *domain.LedgerReport) {
	ctx := r.Context()

	data, err := h.generateExcelFile(report)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("seed_inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.String("filename", filename))
}

func (h *ExportHandler) exportJSON(w http.ResponseWriter, r *http.Request, report *domain.LedgerReport) {
	ctx := r.Context()

	filename := fmt.Sprintf("seed_inventory_%s.json", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	respondJSON(w, h.logger, http.StatusOK, report)

	h.logger.InfoContext(ctx, "JSON export completed",
		slog.String("filename", filename))
}

// generateExcelFile renders the report as a workbook with one sheet per
// ledger.
func (h *ExportHandler) generateExcelFile(report *domain.LedgerReport) ([]byte, error) {
	file := xlsx.NewFile()

	if err := addSheet(file, "Inward", partyLedgerHeaders, report.Inward, inwardRow); err != nil {
		return nil, err
	}
	if err := addSheet(file, "Outward", partyLedgerHeaders, report.Outward, outwardRow); err != nil {
		return nil, err
	}
	if err := addSheet(file, "Returns", returnHeaders, report.Returns, returnRow); err != nil {
		return nil, err
	}
	if err := addSheet(file, "Expiry", expiryHeaders, report.Expiry, expiryRow); err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

// The inward and outward ledgers share a column layout.
var (
	partyLedgerHeaders = []string{"ID", "Seed Name", "Quantity", "Party", "Date", "Notes", "Created At"}
	returnHeaders      = []string{"ID", "Seed Name", "Quantity", "Reason", "Date", "Notes", "Created At"}
	expiryHeaders      = []string{"ID", "Seed Name", "Quantity", "Expiry Date", "Action", "Created At"}
)

func inwardRow(e domain.InwardEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10), e.SeedName, e.Quantity.String(),
		e.Party, e.Date, e.Notes, e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func outwardRow(e domain.OutwardEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10), e.SeedName, e.Quantity.String(),
		e.Party, e.Date, e.Notes, e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func returnRow(e domain.ReturnEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10), e.SeedName, e.Quantity.String(),
		e.Reason, e.Date, e.Notes, e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func expiryRow(e domain.ExpiryEntry) []string {
	return []string{
		strconv.FormatInt(e.ID, 10), e.SeedName, e.Quantity.String(),
		e.ExpiryDate, e.Action, e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// addSheet writes one ledger's entries under a bold header row.
func addSheet[E any](file *xlsx.File, name string, headers []string, entries []E, toRow func(E) []string) error {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return fmt.Errorf("failed to add worksheet %s: %w", name, err)
	}

	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
	}

	for _, entry := range entries {
		row := sheet.AddRow()
		for _, value := range toRow(entry) {
			row.AddCell().Value = value
		}
	}

	for i := range headers {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	return nil
}
