package oee

import (
	"sort"
	"time"

	"oee-dashboard/internal/storage"
)

// ApplyFilter returns the records matching the filter, in input order.
// The input slice is not modified.
func ApplyFilter(records []storage.ProductionRecord, f storage.Filter) []storage.ProductionRecord {
	out := make([]storage.ProductionRecord, 0, len(records))
	for _, rec := range records {
		if f.Line != "" && rec.ProductionLine != f.Line {
			continue
		}
		if f.Part != "" && rec.PartNumber != f.Part {
			continue
		}
		if !f.From.IsZero() && rec.StartOfOrder.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && rec.StartOfOrder.After(f.To) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Options holds the distinct values the SPA offers in its filter
// dropdowns, plus the date bounds of the dataset.
type Options struct {
	Lines []string  `json:"lines"`
	Parts []string  `json:"parts"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

func FilterOptions(records []storage.ProductionRecord) Options {
	lines := make(map[string]struct{})
	parts := make(map[string]struct{})

	var opts Options
	for _, rec := range records {
		lines[rec.ProductionLine] = struct{}{}
		parts[rec.PartNumber] = struct{}{}
		if opts.From.IsZero() || rec.StartOfOrder.Before(opts.From) {
			opts.From = rec.StartOfOrder
		}
		if opts.To.IsZero() || rec.StartOfOrder.After(opts.To) {
			opts.To = rec.StartOfOrder
		}
	}

	opts.Lines = sortedKeys(lines)
	opts.Parts = sortedKeys(parts)
	return opts
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
