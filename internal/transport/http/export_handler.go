package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	apierrors "ridepulse/internal/errors"
	"ridepulse/internal/exporter"
	"ridepulse/internal/infrastructure"
	"ridepulse/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams dashboard summaries as Excel workbooks.
type ExportHandler struct {
	service      *services.DashboardService
	dashboard    *DashboardHandler
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler. It shares the dashboard
// handler's filter parsing so both surfaces accept identical parameters.
func NewExportHandler(service *services.DashboardService, dashboard *DashboardHandler, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		dashboard:    dashboard,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
	}
}

// SummaryWorkbook handles GET /api/export/summary.xlsx
func (h *ExportHandler) SummaryWorkbook(w http.ResponseWriter, r *http.Request) {
	reqID := infrastructure.GetTraceID(r.Context())

	f, err := h.dashboard.parseFilter(r)
	if err != nil {
		h.dashboard.handleServiceError(w, r, "export", err)
		return
	}

	summary, err := exporter.BuildSummary(r.Context(), h.service, f)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build export summary",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.dashboard.handleServiceError(w, r, "export", err)
		return
	}

	// Buffer the workbook so a late excelize failure still yields a clean
	// error response instead of a truncated download.
	var buf bytes.Buffer
	if err := summary.WriteExcel(&buf); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write workbook",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := "ride-summary-" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "workbook download aborted",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}
