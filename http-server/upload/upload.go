package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"oee-dashboard/internal/ingest"
	"oee-dashboard/internal/storage"
)

type DatasetSaver interface {
	SaveDataset(ctx context.Context, fileName string, records []storage.ProductionRecord) (*storage.Dataset, error)
}

type Response struct {
	DatasetID string `json:"dataset_id,omitempty"`
	FileName  string `json:"file_name,omitempty"`
	Rows      int    `json:"rows"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// UploadDataset accepts a multipart CSV upload, validates it and stores
// the parsed records as a new dataset. Validation failures reject the
// whole file with a single descriptive message.
func UploadDataset(log *slog.Logger, saver DatasetSaver, maxUploadBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.upload.UploadDataset"

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			log.With(slog.String("op", op)).Error("Missing file in upload", slog.String("error", err.Error()))
			http.Error(w, "Missing multipart field 'file'", http.StatusBadRequest)
			return
		}
		defer file.Close()

		raw, err := io.ReadAll(file)
		if err != nil {
			log.With(slog.String("op", op)).Error("Failed to read upload", slog.String("error", err.Error()))
			http.Error(w, "Failed to read uploaded file", http.StatusBadRequest)
			return
		}

		records, err := ingest.Parse(raw)
		if err != nil {
			log.With(
				slog.String("op", op),
				slog.String("file", header.Filename),
			).Warn("Upload rejected", slog.String("error", err.Error()))

			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, Response{Status: "error", Error: err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ds, err := saver.SaveDataset(ctx, header.Filename, records)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("Failed to save dataset")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.With(
			slog.String("op", op),
			slog.String("dataset_id", ds.ID),
			slog.Int("rows", len(records)),
		).Info("Dataset uploaded")

		render.JSON(w, r, Response{
			DatasetID: ds.ID,
			FileName:  ds.FileName,
			Rows:      len(records),
			Status:    "ok",
		})
	}
}
