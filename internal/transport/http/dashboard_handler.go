package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ridepulse/internal/analytics"
	apierrors "ridepulse/internal/errors"
	"ridepulse/internal/infrastructure"
	"ridepulse/internal/services"
)

const dateParamLayout = "2006-01-02"

// DashboardHandler handles dashboard view requests with RFC 7807 compliance
type DashboardHandler struct {
	service      *services.DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDashboardHandler creates a new dashboard handler with RFC 7807 error handling
func NewDashboardHandler(service *services.DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the dashboard routes with proper Chi patterns
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/temporal", h.GetTemporal)
	r.Get("/locations", h.GetLocations)
	r.Get("/quality", h.GetQuality)
	r.Get("/financial", h.GetFinancial)
	r.Get("/meta", h.GetMeta)

	return r
}

// filterParams carries the raw query parameters before parsing.
type filterParams struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseFilter extracts and validates from/to/vehicles query parameters.
// An absent vehicles parameter means no vehicle filter; a present but
// empty one selects nothing.
func (h *DashboardHandler) parseFilter(r *http.Request) (analytics.Filter, error) {
	q := r.URL.Query()
	params := filterParams{From: q.Get("from"), To: q.Get("to")}

	if err := h.validate.Struct(params); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return analytics.Filter{}, apierrors.ErrValidation(field, "must be a date in YYYY-MM-DD format")
		}
		return analytics.Filter{}, err
	}

	var f analytics.Filter
	if params.From != "" {
		t, err := time.Parse(dateParamLayout, params.From)
		if err != nil {
			return analytics.Filter{}, apierrors.ErrValidation("from", "must be a date in YYYY-MM-DD format")
		}
		f.Start = t
	}
	if params.To != "" {
		t, err := time.Parse(dateParamLayout, params.To)
		if err != nil {
			return analytics.Filter{}, apierrors.ErrValidation("to", "must be a date in YYYY-MM-DD format")
		}
		f.End = t
	}

	if q.Has("vehicles") {
		f.VehicleTypes = []string{}
		for _, v := range strings.Split(q.Get("vehicles"), ",") {
			if v = strings.TrimSpace(v); v != "" {
				f.VehicleTypes = append(f.VehicleTypes, v)
			}
		}
	}

	if err := f.Validate(); err != nil {
		return analytics.Filter{}, err
	}
	return f, nil
}

// GetOverview handles GET /api/dashboard/overview
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "overview", func(ctx context.Context, f analytics.Filter) (any, error) {
		return h.service.Overview(ctx, f)
	})
}

// GetTemporal handles GET /api/dashboard/temporal
func (h *DashboardHandler) GetTemporal(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "temporal", func(ctx context.Context, f analytics.Filter) (any, error) {
		return h.service.Temporal(ctx, f)
	})
}

// GetLocations handles GET /api/dashboard/locations
func (h *DashboardHandler) GetLocations(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "locations", func(ctx context.Context, f analytics.Filter) (any, error) {
		return h.service.Locations(ctx, f)
	})
}

// GetQuality handles GET /api/dashboard/quality
func (h *DashboardHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "quality", func(ctx context.Context, f analytics.Filter) (any, error) {
		return h.service.Quality(ctx, f)
	})
}

// GetFinancial handles GET /api/dashboard/financial
func (h *DashboardHandler) GetFinancial(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, "financial", func(ctx context.Context, f analytics.Filter) (any, error) {
		return h.service.Financial(ctx, f)
	})
}

// GetMeta handles GET /api/dashboard/meta
func (h *DashboardHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Meta(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "meta", err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   meta,
	})
}

func (h *DashboardHandler) serveView(w http.ResponseWriter, r *http.Request, view string, build func(context.Context, analytics.Filter) (any, error)) {
	reqID := infrastructure.GetTraceID(r.Context())

	f, err := h.parseFilter(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "invalid dashboard filter",
			slog.String("view", view),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.handleServiceError(w, r, view, err)
		return
	}

	data, err := build(r.Context(), f)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build dashboard view",
			slog.String("view", view),
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.handleServiceError(w, r, view, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// handleServiceError maps service errors to API errors before delegating
// to the RFC 7807 handler.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, view string, err error) {
	switch {
	case errors.Is(err, analytics.ErrInvalidRange):
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidDateRange)
	case errors.Is(err, services.ErrSnapshotNotFound):
		h.errorHandler.HandleError(w, r, apierrors.SnapshotError(err))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}
