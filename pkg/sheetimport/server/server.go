// Package server exposes workbook upload over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/clinicapay/sheetimport/pkg/sheetimport"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/store"
	"github.com/gorilla/mux"
)

// Importer persists a parse result.
type Importer interface {
	Import(ctx context.Context, fileName string, res *models.ParseResult) (*store.Summary, error)
}

// Server handles uploads.
type Server struct {
	importer  Importer
	logger    *slog.Logger
	maxUpload int64
}

// New returns a server importing through im.
func New(im Importer, logger *slog.Logger, maxUpload int64) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{importer: im, logger: logger, maxUpload: maxUpload}
}

// Router returns the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		writeError(w, http.StatusBadRequest, "invalid file format, send an .xlsx or .xls file")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	res, err := sheetimport.Parse(data, sheetimport.Options{Logger: s.logger})
	switch {
	case errors.Is(err, sheetimport.ErrMissingIdentity):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, sheetimport.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("parse failed", "file", header.Filename, "error", err)
		writeError(w, http.StatusBadRequest, "failed to parse workbook")
		return
	}

	summary, err := s.importer.Import(r.Context(), header.Filename, res)
	if err != nil {
		s.logger.Error("import failed", "file", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store records")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
