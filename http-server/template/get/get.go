package get

import (
	"log/slog"
	"net/http"

	"oee-dashboard/internal/ingest"
)

// GetTemplate serves the CSV upload template for download.
func GetTemplate(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.template.GetTemplate"

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=oee_template.csv")

		if _, err := w.Write(ingest.Template()); err != nil {
			log.With(slog.String("op", op)).Error("Failed to write template", slog.String("error", err.Error()))
		}
	}
}
