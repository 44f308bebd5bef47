package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "geocli/internal/errors"
	"geocli/internal/services"
)

// DataServiceInterface is what the data handler needs from the service
// layer. Narrow on purpose so handler tests can stub it.
type DataServiceInterface interface {
	TableNames() []string
	GetTable(ctx context.Context, name string) (*services.Table, error)
	GetInsights(ctx context.Context) (string, error)
}

// DataHandler serves the generated result tables as JSON.
type DataHandler struct {
	service DataServiceInterface
	logger  *slog.Logger
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger) *DataHandler {
	return &DataHandler{
		service: service,
		logger:  logger.With(slog.String("component", "data_handler")),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/tables", h.ListTables)
	r.Get("/tables/{table}", h.GetTable)
	r.Get("/insights", h.GetInsights)

	return r
}

// ListTables handles GET /api/data/tables
func (h *DataHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"tables": h.service.TableNames(),
	})
}

// GetTable handles GET /api/data/tables/{table}
func (h *DataHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "table")
	if name == "" {
		render.Render(w, r, apierrors.ErrValidation("table", "table name is required"))
		return
	}

	table, err := h.service.GetTable(r.Context(), name)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get table",
			slog.String("table", name),
			slog.String("error", err.Error()))

		if errors.Is(err, os.ErrNotExist) {
			render.Render(w, r, apierrors.ErrTableNotFound)
			return
		}
		render.Render(w, r, apierrors.InternalServerError(err))
		return
	}

	render.JSON(w, r, table)
}

// GetInsights handles GET /api/data/insights
func (h *DataHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetInsights(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to get insights",
			slog.String("error", err.Error()))

		if errors.Is(err, os.ErrNotExist) {
			render.Render(w, r, apierrors.ErrTableNotFound)
			return
		}
		render.Render(w, r, apierrors.InternalServerError(err))
		return
	}

	render.JSON(w, r, map[string]string{"report": report})
}
