package oee

import (
	"time"

	"oee-dashboard/internal/storage"
)

// Compute derives Availability, Performance, Quality and OEE for every
// record. It is pure: the input is not mutated and the same input always
// produces the same output.
//
// Out-of-range ratios (noisy counters, actual time shorter than ideal)
// are clamped to [0,1] rather than reported. Known limitation carried
// over from the original formula set.
func Compute(records []storage.ProductionRecord) []storage.MetricRecord {
	out := make([]storage.MetricRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, computeOne(rec))
	}
	return out
}

func computeOne(rec storage.ProductionRecord) storage.MetricRecord {
	// Planned production time is authoritative only as totalPieces *
	// idealCycleTime; the uploaded value is overridden.
	rec.PlannedProductionTime = float64(rec.TotalPieces) * rec.IdealCycleTime

	var availability, performance, quality float64
	if rec.ActualProductionTime > 0 {
		availability = (rec.PlannedProductionTime + rec.PlannedDowntime) / rec.ActualProductionTime
		performance = rec.IdealCycleTime * float64(rec.TotalPieces) / rec.ActualProductionTime
	}
	if rec.TotalPieces > 0 {
		quality = float64(rec.GoodPieces) / float64(rec.TotalPieces)
	}

	// OEE composes the raw ratios; all four are clamped afterwards.
	oee := availability * performance * quality

	return storage.MetricRecord{
		ProductionRecord: rec,
		Availability:     clamp01(availability),
		Performance:      clamp01(performance),
		Quality:          clamp01(quality),
		OEE:              clamp01(oee),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Summary is the headline tile data: the metrics of the most recent row
// in the view (by input order, matching the dashboard's "latest" tiles).
type Summary struct {
	Rows         int       `json:"rows"`
	StartOfOrder time.Time `json:"startOfOrder"`
	Availability float64   `json:"availability"`
	Performance  float64   `json:"performance"`
	Quality      float64   `json:"quality"`
	OEE          float64   `json:"oee"`
}

func Summarize(records []storage.MetricRecord) Summary {
	if len(records) == 0 {
		return Summary{}
	}
	last := records[len(records)-1]
	return Summary{
		Rows:         len(records),
		StartOfOrder: last.StartOfOrder,
		Availability: last.Availability,
		Performance:  last.Performance,
		Quality:      last.Quality,
		OEE:          last.OEE,
	}
}
