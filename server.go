package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chazu/cabdrill/pkg/config"
	"github.com/chazu/cabdrill/pkg/logging"
	"github.com/chazu/cabdrill/pkg/part"
	"github.com/chazu/cabdrill/pkg/pipeline"
	"github.com/chazu/cabdrill/pkg/template"
)

// maxBodyBytes caps request bodies; catalog sources are the largest input.
const maxBodyBytes = 1 << 20

// Server is the HTTP surface over App.
type Server struct {
	app    *App
	cfg    config.ServerConfig
	router *chi.Mux
	server *http.Server
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ComputeRequest names a part and the hardware to drill it for.
type ComputeRequest struct {
	Part       part.Descriptor `json:"part"`
	HardwareID string          `json:"hardware_id"`
}

// NewServer creates a Server with middleware and routes in place.
func NewServer(app *App, cfg config.ServerConfig) *Server {
	s := &Server{
		app:    app,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	timeout := s.cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(logging.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(timeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/hardware", s.handleListHardware)
		r.Get("/hardware/{id}", s.handleGetHardware)

		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates/{id}/expand", s.handleExpand)
		r.Post("/templates/{id}/compute", s.handleComputeTemplate)

		r.Post("/compute", s.handleCompute)
		r.Post("/preview", s.handlePreview)
		r.Post("/catalog", s.handleLoadCatalog)

		r.Get("/schema", s.handleSchema)
	})
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// ---------------------------------------------------------------------------
// Handlers
// ---------------------------------------------------------------------------

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListHardware(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.app.Hardware())
}

func (s *Server) handleGetHardware(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	spec, ok := s.app.LookupHardware(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown hardware %q", id), nil)
		return
	}
	writeJSON(w, r, http.StatusOK, spec)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.app.Templates())
}

// templateSize resolves the {id} template and decodes an optional size body.
func (s *Server) templateSize(w http.ResponseWriter, r *http.Request) (string, template.Size, bool) {
	id := chi.URLParam(r, "id")
	if _, ok := s.app.LookupTemplate(id); !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("unknown template %q", id), nil)
		return "", template.Size{}, false
	}
	var size template.Size
	if err := decodeJSON(w, r, &size, true); err != nil {
		writeError(w, r, http.StatusBadRequest, err, nil)
		return "", template.Size{}, false
	}
	return id, size, true
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	id, size, ok := s.templateSize(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, s.app.Expand(id, size))
}

func (s *Server) handleComputeTemplate(w http.ResponseWriter, r *http.Request) {
	id, size, ok := s.templateSize(w, r)
	if !ok {
		return
	}
	batch := s.app.ComputeTemplate(id, size)
	logging.WithFields(r.Context(), "template_id", id).Debug("template computed",
		"parts", len(batch.Parts), "holes", batch.HoleCount())
	writeJSON(w, r, http.StatusOK, batch)
}

type computeResponse struct {
	pipeline.Result
	Validation []validationIssue `json:"validation"`
}

type validationIssue struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func validationIssues(p part.Descriptor) []validationIssue {
	out := []validationIssue{}
	for _, v := range part.Validate(p) {
		out = append(out, validationIssue{Field: v.Field, Message: v.Message, Severity: v.Severity.String()})
	}
	return out
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err, nil)
		return
	}
	res := s.app.Compute(req.Part, req.HardwareID)
	if res.Hardware == nil {
		logging.FromContext(r.Context()).Warn("unknown hardware", "hardware_id", req.HardwareID)
	}
	writeJSON(w, r, http.StatusOK, computeResponse{
		Result:     res,
		Validation: validationIssues(req.Part),
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req ComputeRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err, nil)
		return
	}
	res, err := s.app.Preview(req.Part, req.HardwareID)
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err, validationIssues(req.Part))
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleLoadCatalog(w http.ResponseWriter, r *http.Request) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("read catalog: %w", err), nil)
		return
	}
	res, err := s.app.LoadCatalog(string(src))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err, nil)
		return
	}
	if len(res.Errors) > 0 {
		writeJSON(w, r, http.StatusUnprocessableEntity, res)
		return
	}
	logging.FromContext(r.Context()).Info("catalog loaded",
		"hardware", res.Hardware, "templates", res.Templates, "warnings", len(res.Warnings))
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/sql; charset=utf-8")
	_, _ = io.WriteString(w, s.app.Schema())
}

// ---------------------------------------------------------------------------
// Encoding helpers
// ---------------------------------------------------------------------------

// decodeJSON decodes the request body into v. With optional set, an empty
// body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// writeError logs err with the request id and replies with its message.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error, details any) {
	logging.FromContext(r.Context()).Warn("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
	)
	writeJSON(w, r, status, ErrorResponse{Error: err.Error(), Details: details})
}
