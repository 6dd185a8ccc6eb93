// Package server exposes composition and rendering over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness probe
//	GET  /kinds     registered element kinds
//	POST /compose   layout + record → composed entries (JSON)
//	POST /render    layout + record → PDF
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/folio/compose"
	"github.com/ByLCY/folio/internal/pipeline"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/record"
)

// maxBodyBytes bounds request payloads.
const maxBodyBytes = 4 << 20

// Server serves the folio HTTP API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Request is the body of /compose and /render. Exactly one of Layout and
// DSL must be set.
type Request struct {
	Layout    *layout.Config `json:"layout,omitempty"`
	DSL       string         `json:"dsl,omitempty"`
	Record    record.Value   `json:"record"`
	SkipEmpty bool           `json:"skipEmpty,omitempty"`
}

// Handler returns the route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/kinds", s.handleKinds)
	r.Post("/compose", s.handleCompose)
	r.Post("/render", s.handleRender)
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kinds": s.runner.Registry.Kinds()})
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	req, src, ok := s.decode(w, r)
	if !ok {
		return
	}
	entries, err := s.runner.Compose(r.Context(), src, req.Record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if req.SkipEmpty {
		entries = compose.NonEmpty(entries)
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, src, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Execute(r.Context(), src, req.Record)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", src.Name+".pdf"))
	w.Header().Set("X-Folio-Pages", strconv.Itoa(res.Stats.Pages))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// decode parses the request body and builds the layout source. It writes
// the error response itself and reports false on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, *pipeline.Source, bool) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return nil, nil, false
	}

	var src *pipeline.Source
	switch {
	case req.Layout != nil && req.DSL != "":
		writeError(w, http.StatusBadRequest, errors.New("set either layout or dsl, not both"))
		return nil, nil, false
	case req.DSL != "":
		var err error
		if src, err = pipeline.ParseDSL(req.DSL); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, nil, false
		}
	case req.Layout != nil:
		if err := req.Layout.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return nil, nil, false
		}
		src = pipeline.FromConfig(req.Layout)
	default:
		writeError(w, http.StatusBadRequest, errors.New("missing layout"))
		return nil, nil, false
	}
	return &req, src, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
