// Package api exposes the analysis pipeline over HTTP.
//
// The server is a thin layer: it validates requests, runs the shared
// pipeline.Runner, archives reports in the configured store, and
// serializes results as JSON. Error responses carry the structured
// error codes from pkg/errors.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	archerrors "github.com/archscope/archscope/pkg/errors"
	"github.com/archscope/archscope/pkg/pipeline"
	"github.com/archscope/archscope/pkg/store"
)

// Server handles the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates an API server around a pipeline runner and a
// report store.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Delete("/reports/{id}", s.handleDeleteReport)
	})
	return r
}

// analyzeRequest is the POST /api/analyze body.
type analyzeRequest struct {
	pipeline.Options
}

// analyzeResponse wraps the report with run metadata.
type analyzeResponse struct {
	ReportID string `json:"report_id"`
	Cached   bool   `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, archerrors.Wrap(archerrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	req.Logger = s.logger

	rep, cached, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Save(r.Context(), rep); err != nil {
		s.logger.Warn("failed to archive report", "id", rep.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, struct {
		analyzeResponse
		Report any `json:"report"`
	}{
		analyzeResponse: analyzeResponse{ReportID: rep.ID, Cached: cached},
		Report:          rep,
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": summaries})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch archerrors.GetCode(err) {
	case archerrors.ErrCodeInvalidInput, archerrors.ErrCodeInvalidPath,
		archerrors.ErrCodeInvalidConfig, archerrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case archerrors.ErrCodeNotFound, archerrors.ErrCodeReportNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    string(archerrors.GetCode(err)),
		Message: archerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
