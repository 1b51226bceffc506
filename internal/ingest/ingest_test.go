package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCSV = `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,PN001,375.5,471,0.5,751,698,35,12
1/13/2025 06:30,Line02,PN003,280,320,0.4,700,685,20,5
`

func TestParseValidFile(t *testing.T) {
	records, err := Parse([]byte(validCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, time.Date(2025, 1, 12, 14, 12, 0, 0, time.UTC), first.StartOfOrder)
	assert.Equal(t, "Line01", first.ProductionLine)
	assert.Equal(t, "PN001", first.PartNumber)
	assert.Equal(t, 375.5, first.PlannedProductionTime)
	assert.Equal(t, 471.0, first.ActualProductionTime)
	assert.Equal(t, 0.5, first.IdealCycleTime)
	assert.Equal(t, 751, first.TotalPieces)
	assert.Equal(t, 698, first.GoodPieces)
	assert.Equal(t, 35.0, first.PlannedDowntime)
	assert.Equal(t, 12.0, first.UnplannedDowntime)

	// input order preserved
	assert.Equal(t, "Line02", records[1].ProductionLine)
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	csv := "# exported by MES\n\n" + validCSV + "\n# trailing comment\n"

	records, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestParseRecoversHeaderFromFirstDataRow(t *testing.T) {
	csv := ",,,,,,,,,\n" + validCSV

	records, err := Parse([]byte(csv))
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "PN001", records[0].PartNumber)
}

func TestParseMissingColumn(t *testing.T) {
	csv := `startOfOrder,productionLine,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,375.5,471,0.5,751,698,35,12
`

	_, err := Parse([]byte(csv))
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"partNumber"}, missing.Columns)
}

func TestParseDateFormatsAgree(t *testing.T) {
	us := `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,PN001,375.5,471,0.5,751,698,35,12
`
	iso := `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
2025-01-12 14:12:00,Line01,PN001,375.5,471,0.5,751,698,35,12
`

	a, err := Parse([]byte(us))
	require.NoError(t, err)
	b, err := Parse([]byte(iso))
	require.NoError(t, err)

	assert.True(t, a[0].StartOfOrder.Equal(b[0].StartOfOrder))
}

func TestParseUnparseableDate(t *testing.T) {
	csv := `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
not-a-date,Line01,PN001,375.5,471,0.5,751,698,35,12
`

	_, err := Parse([]byte(csv))
	require.Error(t, err)

	var dateErr *DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 1, dateErr.Row)
}

func TestParseNumericCoercionNamesColumn(t *testing.T) {
	csv := `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,PN001,375.5,n/a,0.5,751,698,35,12
`

	_, err := Parse([]byte(csv))
	require.Error(t, err)

	var numErr *NumericCoercionError
	require.ErrorAs(t, err, &numErr)
	assert.Equal(t, "actualProductionTime", numErr.Column)
}

func TestParseEmptyIdentifier(t *testing.T) {
	csv := `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,,PN001,375.5,471,0.5,751,698,35,12
`

	_, err := Parse([]byte(csv))
	require.Error(t, err)

	var emptyErr *EmptyFieldError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "productionLine", emptyErr.Column)
}

func TestParseFailsFastOnFirstBadRow(t *testing.T) {
	csv := validCSV + `1/14/2025 07:00,Line03,PN002,100,abc,0.5,200,190,10,0
`

	records, err := Parse([]byte(csv))
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestTemplateParsesBack(t *testing.T) {
	records, err := Parse(Template())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "Line01", records[0].ProductionLine)
}
