package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"oee-dashboard/internal/constants"
	"oee-dashboard/internal/storage"
)

// Accepted startOfOrder layouts, primary first. The first layout also
// covers zero-padded month/day values.
var dateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

// Parse turns the raw bytes of an uploaded CSV into validated
// ProductionRecords, preserving row order. Lines starting with '#' and
// blank lines are skipped. Any validation failure rejects the whole
// upload.
func Parse(raw []byte) ([]storage.ProductionRecord, error) {
	const op = "ingest.Parse"

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: file contains no rows", op)
	}

	header := trimFields(rows[0])
	data := rows[1:]

	// Recovery for files where a stray first line pushed the real header
	// into the data. Best effort only.
	if !containsField(header, constants.DateColumn) && len(data) > 0 && containsField(trimFields(data[0]), constants.DateColumn) {
		header = trimFields(data[0])
		data = data[1:]
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var missing []string
	for _, name := range constants.RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	records := make([]storage.ProductionRecord, 0, len(data))
	for i, row := range data {
		rowNum := i + 1

		rec, err := parseRow(row, columns, rowNum)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, columns map[string]int, rowNum int) (storage.ProductionRecord, error) {
	var rec storage.ProductionRecord

	start, err := parseDate(field(row, columns[constants.DateColumn]))
	if err != nil {
		return rec, &DateParseError{Row: rowNum, Value: field(row, columns[constants.DateColumn])}
	}
	rec.StartOfOrder = start

	numbers := make(map[string]float64, len(constants.NumericColumns))
	for _, name := range constants.NumericColumns {
		value := field(row, columns[name])
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return rec, &NumericCoercionError{Column: name, Row: rowNum, Value: value}
		}
		numbers[name] = f
	}

	for _, name := range constants.IdentifierColumns {
		if field(row, columns[name]) == "" {
			return rec, &EmptyFieldError{Column: name, Row: rowNum}
		}
	}

	rec.ProductionLine = field(row, columns["productionLine"])
	rec.PartNumber = field(row, columns["partNumber"])
	rec.PlannedProductionTime = numbers["plannedProductionTime"]
	rec.ActualProductionTime = numbers["actualProductionTime"]
	rec.IdealCycleTime = numbers["idealCycleTime"]
	rec.TotalPieces = int(math.Round(numbers["totalPieces"]))
	rec.GoodPieces = int(math.Round(numbers["goodPieces"]))
	rec.PlannedDowntime = numbers["plannedDowntime"]
	rec.UnplannedDowntime = numbers["unplannedDowntime"]

	return rec, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no layout matches %q", value)
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func trimFields(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func containsField(row []string, name string) bool {
	for _, v := range row {
		if v == name {
			return true
		}
	}
	return false
}
