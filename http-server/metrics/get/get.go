package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"oee-dashboard/internal/service/oee"
	"oee-dashboard/internal/storage"
	"oee-dashboard/internal/storage/memory"
)

type ViewProvider interface {
	View(ctx context.Context, datasetID string, f storage.Filter) ([]storage.MetricRecord, error)
}

type ResponseMetrics struct {
	Records []storage.MetricRecord `json:"records"`
	Summary oee.Summary            `json:"summary"`
	Status  string                 `json:"status"`
	Error   string                 `json:"error,omitempty"`
}

// GetMetrics returns the metric rows of a dataset, optionally narrowed
// by line/part/date-range query parameters.
func GetMetrics(log *slog.Logger, views ViewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.metrics.GetMetrics"

		datasetID := chi.URLParam(r, "datasetID")

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
				log.With(slog.String("op", op), slog.String("dataset_id", datasetID)).Warn("Dataset not found")
				http.Error(w, "Dataset not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to build view")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseMetrics{
			Records: view,
			Summary: oee.Summarize(view),
			Status:  "ok",
		})
	}
}

type badFilterError struct{ msg string }

func (e *badFilterError) Error() string { return e.msg }

func parseFilter(r *http.Request) (storage.Filter, error) {
	filter := storage.Filter{
		Line: r.URL.Query().Get("line"),
		Part: r.URL.Query().Get("part"),
	}

	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return storage.Filter{}, &badFilterError{"invalid from date, expected YYYY-MM-DD"}
		}
		filter.From = from
	}

	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return storage.Filter{}, &badFilterError{"invalid to date, expected YYYY-MM-DD"}
		}
		// date-only bound covers the whole day
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	return filter, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrDatasetNotFound)
}
