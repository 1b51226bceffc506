package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"oee-dashboard/internal/storage"
	"oee-dashboard/internal/storage/memory"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, datasetID string, filter storage.Filter) ([]byte, error)
}

// GenerateReportExcel streams the filtered metric view of a dataset as
// an .xlsx attachment.
func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		datasetID := chi.URLParam(r, "datasetID")

		filter := storage.Filter{
			Line: r.URL.Query().Get("line"),
			Part: r.URL.Query().Get("part"),
		}

		if fromStr := r.URL.Query().Get("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				http.Error(w, "invalid from date", http.StatusBadRequest)
				return
			}
			filter.From = from
		}

		if toStr := r.URL.Query().Get("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				http.Error(w, "invalid to date", http.StatusBadRequest)
				return
			}
			filter.To = to.Add(24*time.Hour - time.Nanosecond)
		}

		// excel generation gets a longer budget than the JSON endpoints
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, datasetID, filter)
		if err != nil {
			if errors.Is(err, memory.ErrDatasetNotFound) {
				http.Error(w, "Dataset not found", http.StatusNotFound)
				return
			}

			log.Error("failed to generate excel", "op", op, "err", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		fileName := fmt.Sprintf("OEE_Report_%s.xlsx", time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Write(excelBytes)
	}
}
