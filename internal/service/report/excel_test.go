package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oee-dashboard/internal/service/oee"
	"oee-dashboard/internal/storage"
	"oee-dashboard/internal/storage/memory"
)

func reportFixture(t *testing.T) (*memory.Store, string) {
	t.Helper()

	store := memory.New(2)
	ds, err := store.SaveDataset(context.Background(), "shift.csv", []storage.ProductionRecord{
		{
			StartOfOrder:         time.Date(2025, 1, 12, 14, 12, 0, 0, time.UTC),
			ProductionLine:       "Line01",
			PartNumber:           "PN001",
			ActualProductionTime: 471,
			IdealCycleTime:       0.5,
			TotalPieces:          751,
			GoodPieces:           698,
			PlannedDowntime:      35,
		},
	})
	require.NoError(t, err)
	return store, ds.ID
}

func TestGenerateExcel(t *testing.T) {
	store, id := reportFixture(t)
	svc := NewExcelService(oee.NewViewService(store), store)

	data, err := svc.GenerateExcel(context.Background(), id, storage.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	source, err := f.GetCellValue("OEE Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Source: shift.csv", source)

	header, err := f.GetCellValue("OEE Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Start of Order", header)

	line, err := f.GetCellValue("OEE Report", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Line01", line)

	avgLabel, err := f.GetCellValue("OEE Report", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Average", avgLabel)
}

func TestGenerateExcelUnknownDataset(t *testing.T) {
	store, _ := reportFixture(t)
	svc := NewExcelService(oee.NewViewService(store), store)

	_, err := svc.GenerateExcel(context.Background(), "missing", storage.Filter{})
	assert.Error(t, err)
}
