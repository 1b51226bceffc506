package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/schollz/progressbar/v3"

	"oee-dashboard/internal/constants"
)

// gendata writes a realistic sample production CSV for exercising the
// dashboard: five lines, seven parts, per-part baselines with slow drift.

type partParams struct {
	cycleTime    float64
	quality      float64
	performance  float64
	availability float64
}

var partBase = map[string]partParams{
	"PN001": {0.5, 0.95, 0.85, 0.90},
	"PN002": {0.6, 0.97, 0.82, 0.88},
	"PN003": {0.4, 0.93, 0.87, 0.92},
	"PN004": {0.7, 0.96, 0.83, 0.86},
	"PN005": {0.55, 0.94, 0.89, 0.91},
	"PN006": {0.65, 0.98, 0.84, 0.87},
	"PN007": {0.45, 0.92, 0.86, 0.89},
}

var lines = []string{"Line01", "Line02", "Line03", "Line04", "Line05"}
var parts = []string{"PN001", "PN002", "PN003", "PN004", "PN005", "PN006", "PN007"}

func main() {
	rows := flag.Int("rows", 5000, "number of rows to generate")
	out := flag.String("out", "sample_oee_data.csv", "output file")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(constants.RequiredColumns); err != nil {
		log.Fatalf("write header: %v", err)
	}

	bar := progressbar.Default(int64(*rows))
	current := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)

	for i := 0; i < *rows; i++ {
		if err := w.Write(row(rng, current)); err != nil {
			log.Fatalf("write row %d: %v", i, err)
		}
		current = current.Add(time.Duration(30+rng.Intn(180)) * time.Minute)
		bar.Add(1)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}

	fmt.Printf("wrote %d rows to %s\n", *rows, *out)
}

func row(rng *rand.Rand, start time.Time) []string {
	line := lines[rng.Intn(len(lines))]
	part := parts[rng.Intn(len(parts))]
	base := partBase[part]

	total := 100 + rng.Intn(900)
	quality := jitter(rng, base.quality, 0.015, 0.75, 0.995)
	performance := jitter(rng, base.performance, 0.025, 0.65, 0.98)
	availability := jitter(rng, base.availability, 0.02, 0.70, 0.97)

	good := int(float64(total) * quality)
	planned := float64(total) * base.cycleTime
	actual := planned / performance
	plannedDowntime := availability*actual - planned
	if plannedDowntime < 0 {
		plannedDowntime = 0
	}
	unplannedDowntime := rng.Float64() * 30

	return []string{
		start.Format("1/2/2006 15:04"),
		line,
		part,
		formatFloat(planned),
		formatFloat(actual),
		formatFloat(base.cycleTime),
		strconv.Itoa(total),
		strconv.Itoa(good),
		formatFloat(plannedDowntime),
		formatFloat(unplannedDowntime),
	}
}

func jitter(rng *rand.Rand, base, sigma, min, max float64) float64 {
	v := base + rng.NormFloat64()*sigma
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
