package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"oee-dashboard/internal/storage"
)

type ViewProvider interface {
	View(ctx context.Context, datasetID string, f storage.Filter) ([]storage.MetricRecord, error)
}

type DatasetStore interface {
	Dataset(ctx context.Context, id string) (*storage.Dataset, error)
}

type ExcelService struct {
	views ViewProvider
	store DatasetStore
}

func NewExcelService(views ViewProvider, store DatasetStore) *ExcelService {
	return &ExcelService{views: views, store: store}
}

var reportHeaders = []string{
	"Start of Order", "Production Line", "Part Number",
	"Planned Production Time", "Actual Production Time", "Ideal Cycle Time",
	"Total Pieces", "Good Pieces", "Planned Downtime", "Unplanned Downtime",
	"Availability", "Performance", "Quality", "OEE",
}

// GenerateExcel renders the filtered metric view of a dataset as an
// .xlsx workbook for download.
func (s *ExcelService) GenerateExcel(ctx context.Context, datasetID string, filter storage.Filter) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	var (
		view []storage.MetricRecord
		ds   *storage.Dataset
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		view, err = s.views.View(gCtx, datasetID, filter)
		if err != nil {
			return fmt.Errorf("view: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		ds, err = s.store.Dataset(gCtx, datasetID)
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "OEE Report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	percentFmt := "0.0%"
	percentStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	avgStyle, _ := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &percentFmt,
	})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Source: %s", ds.FileName))
	for i, name := range reportHeaders {
		f.SetCellValue(sheet, cellName(i+1, 2), name)
	}
	f.SetCellStyle(sheet, "A2", cellName(len(reportHeaders), 2), headerStyle)

	var sumA, sumP, sumQ, sumOEE float64
	for rowIdx, m := range view {
		rowNum := rowIdx + 3

		f.SetCellValue(sheet, cellName(1, rowNum), m.StartOfOrder.Format("01/02/2006 15:04"))
		f.SetCellValue(sheet, cellName(2, rowNum), m.ProductionLine)
		f.SetCellValue(sheet, cellName(3, rowNum), m.PartNumber)
		f.SetCellValue(sheet, cellName(4, rowNum), m.PlannedProductionTime)
		f.SetCellValue(sheet, cellName(5, rowNum), m.ActualProductionTime)
		f.SetCellValue(sheet, cellName(6, rowNum), m.IdealCycleTime)
		f.SetCellValue(sheet, cellName(7, rowNum), m.TotalPieces)
		f.SetCellValue(sheet, cellName(8, rowNum), m.GoodPieces)
		f.SetCellValue(sheet, cellName(9, rowNum), m.PlannedDowntime)
		f.SetCellValue(sheet, cellName(10, rowNum), m.UnplannedDowntime)
		f.SetCellValue(sheet, cellName(11, rowNum), m.Availability)
		f.SetCellValue(sheet, cellName(12, rowNum), m.Performance)
		f.SetCellValue(sheet, cellName(13, rowNum), m.Quality)
		f.SetCellValue(sheet, cellName(14, rowNum), m.OEE)

		sumA += m.Availability
		sumP += m.Performance
		sumQ += m.Quality
		sumOEE += m.OEE
	}

	if len(view) > 0 {
		n := float64(len(view))
		avgRow := len(view) + 3
		f.SetCellValue(sheet, cellName(1, avgRow), "Average")
		f.SetCellValue(sheet, cellName(11, avgRow), sumA/n)
		f.SetCellValue(sheet, cellName(12, avgRow), sumP/n)
		f.SetCellValue(sheet, cellName(13, avgRow), sumQ/n)
		f.SetCellValue(sheet, cellName(14, avgRow), sumOEE/n)
		f.SetCellStyle(sheet, cellName(11, 3), cellName(14, avgRow-1), percentStyle)
		f.SetCellStyle(sheet, cellName(1, avgRow), cellName(10, avgRow), headerStyle)
		f.SetCellStyle(sheet, cellName(11, avgRow), cellName(14, avgRow), avgStyle)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
	})
	f.SetColWidth(sheet, "A", "N", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
