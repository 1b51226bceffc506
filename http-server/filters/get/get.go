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

type DatasetProvider interface {
	Dataset(ctx context.Context, id string) (*storage.Dataset, error)
}

type ResponseOptions struct {
	Options oee.Options `json:"options"`
	Status  string      `json:"status"`
	Error   string      `json:"error,omitempty"`
}

// GetFilterOptions returns the distinct production lines, part numbers
// and date bounds of a dataset for the dashboard's filter dropdowns.
func GetFilterOptions(log *slog.Logger, store DatasetProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.filters.GetFilterOptions"

		datasetID := chi.URLParam(r, "datasetID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ds, err := store.Dataset(ctx, datasetID)
		if err != nil {
			if errors.Is(err, memory.ErrDatasetNotFound) {
				log.With(slog.String("op", op), slog.String("dataset_id", datasetID)).Warn("Dataset not found")
				http.Error(w, "Dataset not found", http.StatusNotFound)
				return
			}

			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to fetch dataset")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, ResponseOptions{
			Options: oee.FilterOptions(ds.Records),
			Status:  "ok",
		})
	}
}
