package upload

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"log/slog"

	"oee-dashboard/internal/storage"
)

type MockDatasetSaver struct {
	mock.Mock
}

func (m *MockDatasetSaver) SaveDataset(ctx context.Context, fileName string, records []storage.ProductionRecord) (*storage.Dataset, error) {
	args := m.Called(ctx, fileName, records)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Dataset), args.Error(1)
}

const validCSV = `startOfOrder,productionLine,partNumber,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,PN001,375.5,471,0.5,751,698,35,12
`

func multipartBody(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "production.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUploadDataset_Success(t *testing.T) {
	saver := new(MockDatasetSaver)
	saver.On("SaveDataset", mock.Anything, "production.csv", mock.Anything).
		Return(&storage.Dataset{ID: "ds-1", FileName: "production.csv"}, nil)

	handler := UploadDataset(slog.Default(), saver, 1<<20)

	body, contentType := multipartBody(t, validCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "ds-1", resp.DatasetID)
	assert.Equal(t, 1, resp.Rows)
	assert.Equal(t, "ok", resp.Status)

	saver.AssertExpectations(t)
}

func TestUploadDataset_ValidationFailure(t *testing.T) {
	saver := new(MockDatasetSaver)
	handler := UploadDataset(slog.Default(), saver, 1<<20)

	// partNumber column removed
	badCSV := `startOfOrder,productionLine,plannedProductionTime,actualProductionTime,idealCycleTime,totalPieces,goodPieces,plannedDowntime,unplannedDowntime
1/12/2025 14:12,Line01,375.5,471,0.5,751,698,35,12
`
	body, contentType := multipartBody(t, badCSV)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp Response
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Error, "partNumber")

	saver.AssertNotCalled(t, "SaveDataset", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadDataset_MissingFileField(t *testing.T) {
	saver := new(MockDatasetSaver)
	handler := UploadDataset(slog.Default(), saver, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader("not multipart"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
