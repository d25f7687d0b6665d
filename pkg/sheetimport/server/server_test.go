package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeImporter struct {
	calls int
	res   *models.ParseResult
	err   error
}

func (f *fakeImporter) Import(_ context.Context, fileName string, res *models.ParseResult) (*store.Summary, error) {
	f.calls++
	f.res = res
	if f.err != nil {
		return nil, f.err
	}
	return &store.Summary{RunID: "run-1", TenantID: "42", FileName: fileName, Status: store.StatusDone}, nil
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func upload(t *testing.T, h http.Handler, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var validExport = [][]any{
	{"CNPJ"},
	{"12345678000190", "CODE1"},
	{},
	{"Boletos Emitidos"},
	{"MesRef", "Quantidade", "Valor Total"},
	{"2024-07-01", 10, 5000.0},
}

func TestStatus(t *testing.T) {
	h := New(&fakeImporter{}, nil, 1<<20).Router()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUpload(t *testing.T) {
	im := &fakeImporter{}
	h := New(im, nil, 1<<20).Router()

	rec := upload(t, h, "export.xlsx", workbook(t, validExport))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary store.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "export.xlsx", summary.FileName)
	assert.Equal(t, 1, im.calls)
	assert.Equal(t, "12345678000190", im.res.Identity.ExternalTaxID)
	assert.Len(t, im.res.Records[models.KindIssuedInvoices], 1)
}

func TestUploadErrors(t *testing.T) {
	noIdentity := workbook(t, validExport[3:])

	tests := []struct {
		name     string
		file     string
		data     []byte
		err      error
		expected int
	}{
		{"wrong extension", "export.csv", []byte("a,b"), nil, http.StatusBadRequest},
		{"not a workbook", "export.xlsx", []byte("a,b"), nil, http.StatusBadRequest},
		{"missing identity", "export.xlsx", noIdentity, nil, http.StatusUnprocessableEntity},
		{"store failure", "export.xlsx", workbook(t, validExport), errors.New("down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := &fakeImporter{err: tt.err}
			rec := upload(t, New(im, nil, 1<<20).Router(), tt.file, tt.data)
			assert.Equal(t, tt.expected, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestUploadMissingField(t *testing.T) {
	h := New(&fakeImporter{}, nil, 1<<20).Router()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadMethodNotAllowed(t *testing.T) {
	h := New(&fakeImporter{}, nil, 1<<20).Router()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/upload", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
