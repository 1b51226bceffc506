package ingest

import (
	"bytes"
	"encoding/csv"
	"strings"

	"oee-dashboard/internal/constants"
)

// Template returns the downloadable CSV template: the expected header
// plus a couple of example rows users can overwrite.
func Template() []byte {
	var buf bytes.Buffer
	buf.WriteString("# OEE upload template. Dates in MM/DD/YYYY HH:MM, times in minutes.\n")

	w := csv.NewWriter(&buf)
	_ = w.Write(constants.RequiredColumns)
	_ = w.Write(strings.Split("1/12/2025 14:12,Line01,PN001,375.5,471,0.5,751,698,35,12", ","))
	_ = w.Write(strings.Split("1/13/2025 06:30,Line02,PN003,280,320,0.4,700,685,20,5", ","))
	w.Flush()

	return buf.Bytes()
}
