package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getfilters "oee-dashboard/http-server/filters/get"
	generate_excel "oee-dashboard/http-server/generate-report/generate-excel"
	getmetrics "oee-dashboard/http-server/metrics/get"
	gettemplate "oee-dashboard/http-server/template/get"
	"oee-dashboard/http-server/upload"
	"oee-dashboard/internal/config"
	"oee-dashboard/internal/service/oee"
	"oee-dashboard/internal/service/report"
	"oee-dashboard/internal/storage/memory"
)

func routes(cfg config.Config, log *slog.Logger, store *memory.Store, views *oee.ViewService, reports *report.ExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// upload a production CSV, get back a dataset id
	router.Post("/api/upload", upload.UploadDataset(log, store, cfg.MaxUploadBytes()))

	// CSV template matching the expected schema
	router.Get("/api/template", gettemplate.GetTemplate(log))

	// metric rows + headline summary, filtered by line/part/date range
	router.Get("/api/datasets/{datasetID}/metrics", getmetrics.GetMetrics(log, views))

	// per-period averages for the time-based analysis chart
	router.Get("/api/datasets/{datasetID}/trend", getmetrics.GetTrend(log, views))

	// dropdown values for the filter controls
	router.Get("/api/datasets/{datasetID}/filters", getfilters.GetFilterOptions(log, store))

	// excel export of the current view
	router.Get("/api/datasets/{datasetID}/report/excel", generate_excel.GenerateReportExcel(log, reports))

	// static SPA, when a built frontend is present
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", "path", frontendDir)
		return router
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	// SPA fallback: any other path gets index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, r.URL.Path)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
