package storage

import (
	"strings"
	"time"
)

// ProductionRecord is one validated row of an uploaded production CSV.
// It is never mutated after ingestion.
type ProductionRecord struct {
	StartOfOrder          time.Time `json:"startOfOrder"`
	ProductionLine        string    `json:"productionLine"`
	PartNumber            string    `json:"partNumber"`
	PlannedProductionTime float64   `json:"plannedProductionTime"`
	ActualProductionTime  float64   `json:"actualProductionTime"`
	IdealCycleTime        float64   `json:"idealCycleTime"`
	TotalPieces           int       `json:"totalPieces"`
	GoodPieces            int       `json:"goodPieces"`
	PlannedDowntime       float64   `json:"plannedDowntime"`
	UnplannedDowntime     float64   `json:"unplannedDowntime"`
}

// MetricRecord is a ProductionRecord with the four derived OEE ratios,
// each clamped to [0,1]. PlannedProductionTime is the recomputed value
// (totalPieces * idealCycleTime), not the uploaded one.
type MetricRecord struct {
	ProductionRecord
	Availability float64 `json:"availability"`
	Performance  float64 `json:"performance"`
	Quality      float64 `json:"quality"`
	OEE          float64 `json:"oee"`
}

// Dataset is an immutable snapshot of one upload.
type Dataset struct {
	ID         string             `json:"id"`
	FileName   string             `json:"file_name"`
	UploadedAt time.Time          `json:"uploaded_at"`
	Records    []ProductionRecord `json:"-"`
}

// Filter narrows a dataset before metric computation. Zero values mean
// "no restriction". From/To are inclusive.
type Filter struct {
	Line string
	Part string
	From time.Time
	To   time.Time
}

// Key is a stable cache key for the filter.
func (f Filter) Key() string {
	var from, to string
	if !f.From.IsZero() {
		from = f.From.Format(time.RFC3339)
	}
	if !f.To.IsZero() {
		to = f.To.Format(time.RFC3339)
	}
	return strings.Join([]string{f.Line, f.Part, from, to}, "|")
}
