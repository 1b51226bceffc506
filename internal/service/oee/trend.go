package oee

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"oee-dashboard/internal/storage"
)

type Grouping string

const (
	GroupDaily   Grouping = "daily"
	GroupWeekly  Grouping = "weekly"
	GroupMonthly Grouping = "monthly"
	GroupYearly  Grouping = "yearly"
)

func ParseGrouping(s string) (Grouping, error) {
	switch Grouping(strings.ToLower(s)) {
	case GroupDaily, "":
		return GroupDaily, nil
	case GroupWeekly:
		return GroupWeekly, nil
	case GroupMonthly:
		return GroupMonthly, nil
	case GroupYearly:
		return GroupYearly, nil
	}
	return "", fmt.Errorf("unknown grouping %q", s)
}

// TrendPoint is one period of the time-based analysis chart: the four
// metrics averaged over all rows whose startOfOrder falls in the period.
type TrendPoint struct {
	Period       string    `json:"period"`
	Start        time.Time `json:"start"`
	Rows         int       `json:"rows"`
	Availability float64   `json:"availability"`
	Performance  float64   `json:"performance"`
	Quality      float64   `json:"quality"`
	OEE          float64   `json:"oee"`
}

// Trend buckets metric rows by calendar period and averages each metric
// per bucket. Points come back in chronological order.
func Trend(records []storage.MetricRecord, g Grouping) []TrendPoint {
	buckets := make(map[time.Time]*TrendPoint)

	for _, rec := range records {
		start, label := periodOf(rec.StartOfOrder, g)
		pt, ok := buckets[start]
		if !ok {
			pt = &TrendPoint{Period: label, Start: start}
			buckets[start] = pt
		}
		pt.Rows++
		pt.Availability += rec.Availability
		pt.Performance += rec.Performance
		pt.Quality += rec.Quality
		pt.OEE += rec.OEE
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, pt := range buckets {
		n := float64(pt.Rows)
		pt.Availability /= n
		pt.Performance /= n
		pt.Quality /= n
		pt.OEE /= n
		points = append(points, *pt)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Start.Before(points[j].Start) })
	return points
}

func periodOf(t time.Time, g Grouping) (time.Time, string) {
	switch g {
	case GroupWeekly:
		// back up to Monday
		start := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, t.Location())
		year, week := start.ISOWeek()
		return start, fmt.Sprintf("Week %02d, %d", week, year)
	case GroupMonthly:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start, start.Format("January 2006")
	case GroupYearly:
		start := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
		return start, start.Format("2006")
	default:
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return start, start.Format("2006-01-02")
	}
}
