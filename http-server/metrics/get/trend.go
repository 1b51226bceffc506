package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"oee-dashboard/internal/service/oee"
)

type ResponseTrend struct {
	Grouping oee.Grouping     `json:"grouping"`
	Points   []oee.TrendPoint `json:"points"`
	Status   string           `json:"status"`
	Error    string           `json:"error,omitempty"`
}

// GetTrend returns the per-period metric averages for the time-based
// analysis chart. Grouping defaults to daily.
func GetTrend(log *slog.Logger, views ViewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.metrics.GetTrend"

		datasetID := chi.URLParam(r, "datasetID")

		grouping, err := oee.ParseGrouping(r.URL.Query().Get("group"))
		if err != nil {
			log.With(slog.String("op", op)).Error("Invalid grouping", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			log.With(slog.String("op", op)).Error("Invalid filter", slog.String("error", err.Error()))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		view, err := views.View(ctx, datasetID, filter)
		if err != nil {
			if isNotFound(err) {
				http.Error(w, "Dataset not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to build view")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseTrend{
			Grouping: grouping,
			Points:   oee.Trend(view, grouping),
			Status:   "ok",
		})
	}
}
