// Package server exposes the schema and submission operations over HTTP,
// mirroring the REST surface of the original form builder.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-schemaform/pkg/render"
	"github.com/goliatone/go-schemaform/pkg/renderers/vanilla"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/service"
	"github.com/goliatone/go-schemaform/pkg/store"
	"github.com/goliatone/go-schemaform/pkg/validation"
)

// Option customises the server.
type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer overrides the HTML form renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// Server routes HTTP requests to the service layer.
type Server struct {
	service  *service.Service
	renderer render.Renderer
	logger   *slog.Logger
}

// New constructs a Server over the supplied service.
func New(svc *service.Service, options ...Option) (*Server, error) {
	srv := &Server{service: svc, logger: slog.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(srv)
	}
	if srv.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, err
		}
		srv.renderer = renderer
	}
	return srv, nil
}

// Handler assembles the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(api chi.Router) {
		api.Post("/schemas", s.createSchema)
		api.Get("/schemas", s.listSchemas)
		api.Get("/schemas/{id}", s.getSchema)
		api.Delete("/schemas/{id}", s.deleteSchema)
		api.Get("/schemas/{id}/fields", s.schemaFields)
		api.Get("/schemas/{id}/form", s.schemaForm)
		api.Post("/schemas/{id}/submit", s.submit)
		api.Get("/schemas/{id}/submissions", s.listSubmissions)
		api.Get("/submissions", s.listAllSubmissions)
		api.Get("/health", s.health)
	})

	return r
}

type createSchemaRequest struct {
	Name   string          `json:"name"`
	Schema json.RawMessage `json:"schema"`
}

func (s *Server) createSchema(w http.ResponseWriter, r *http.Request) {
	var req createSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || len(req.Schema) == 0 {
		s.respondError(w, http.StatusBadRequest, "Name and schema are required")
		return
	}

	record, err := s.service.CreateSchema(r.Context(), req.Name, req.Schema)
	if err != nil {
		var compileErr *validation.CompileError
		if errors.As(err, &compileErr) {
			s.respondError(w, http.StatusBadRequest, "Invalid JSON Schema format")
			return
		}
		s.logger.Error("create schema failed", "error", err)
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("schema created", "id", record.ID, "name", record.Name)
	s.respondJSON(w, http.StatusOK, record)
}

func (s *Server) listSchemas(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.GetSchemas(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if records == nil {
		records = []store.Schema{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) getSchema(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.GetSchema(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Schema not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, record)
}

func (s *Server) deleteSchema(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.service.DeleteSchema(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Schema not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.logger.Info("schema deleted", "id", id)
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Schema deleted successfully"})
}

func (s *Server) schemaFields(w http.ResponseWriter, r *http.Request) {
	fields, err := s.service.Fields(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Schema not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, fields)
}

func (s *Server) schemaForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := s.service.GetSchema(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Schema not found")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}

	parsed, err := schema.Parse(record.Schema)
	if err != nil {
		s.internalError(w, err)
		return
	}
	fields, err := s.service.Fields(r.Context(), id)
	if err != nil {
		s.internalError(w, err)
		return
	}

	title := parsed.Title
	if title == "" {
		title = record.Name
	}
	markup, err := s.renderer.Render(r.Context(), render.Form{
		Title:       title,
		Description: parsed.Description,
		Action:      "/api/schemas/" + id + "/submit",
		Fields:      fields,
	}, render.Options{})
	if err != nil {
		s.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(markup)
}

type submitRequest struct {
	Data map[string]any `json:"data"`
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	submission, err := s.service.Submit(r.Context(), id, req.Data)
	if errors.Is(err, store.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "Schema not found")
		return
	}
	var rejected *service.ValidationError
	if errors.As(err, &rejected) {
		s.respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "Validation failed",
			"errors": rejected.Issues,
		})
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}

	s.logger.Info("form submitted", "schema", id, "submission", submission.ID)
	s.respondJSON(w, http.StatusOK, submission)
}

func (s *Server) listSubmissions(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.GetSubmissions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.internalError(w, err)
		return
	}
	if records == nil {
		records = []store.Submission{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) listAllSubmissions(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.GetAllSubmissions(r.Context())
	if err != nil {
		s.internalError(w, err)
		return
	}
	if records == nil {
		records = []store.Submission{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(wrapped, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		s.logger.Error("encode response failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("internal error", "error", err)
	s.respondError(w, http.StatusInternalServerError, "Internal server error")
}
