// Package devserver serves a search backend over the HTTP protocol the
// remote client speaks. It lets the TUI and CLI run against the in-memory
// catalogue without the production search service.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/custodia-labs/sercha-media/internal/adapters/driven/backend/wire"
	"github.com/custodia-labs/sercha-media/internal/core/domain"
	"github.com/custodia-labs/sercha-media/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-media/internal/logger"
)

// DefaultAddr matches the remote client's default base URL.
const DefaultAddr = "localhost:8088"

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server exposes a driven.SearchBackend over HTTP.
type Server struct {
	backend driven.SearchBackend
	router  chi.Router
}

// NewServer creates a server for the given backend.
func NewServer(backend driven.SearchBackend) *Server {
	s := &Server{backend: backend}

	r := chi.NewRouter()
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger)
	s.RegisterRoutes(r)
	s.router = r
	return s
}

// RegisterRoutes mounts the backend endpoints on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post(wire.PathSearch, s.handleSearch)
	r.Get(wire.PathRatings, s.handleAverages)
	r.Post(wire.PathRatings, s.handleRate)
	r.Post(wire.PathFeedback, s.handleFeedback)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Development backend listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req wire.SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := req.Query()
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := s.backend.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilItems(items))
}

func (s *Server) handleAverages(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query()[domain.DocIDParam]
	ids := make([]domain.DocID, 0, len(raw))
	for _, id := range raw {
		if id != "" {
			ids = append(ids, domain.DocID(id))
		}
	}
	if len(ids) == 0 {
		writeError(w, fmt.Errorf("missing %s: %w", domain.DocIDParam, domain.ErrInvalidInput))
		return
	}

	averages, err := s.backend.AverageRatings(r.Context(), ids...)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make(wire.AveragesResponse, len(averages))
	for id, avg := range averages {
		resp[id.String()] = avg
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var req wire.RatingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DocID.IsZero() {
		writeError(w, fmt.Errorf("missing %s: %w", domain.DocIDParam, domain.ErrInvalidInput))
		return
	}

	receipt, err := s.backend.SubmitRating(r.Context(), req.DocID, req.Stars)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.RatingResponse(receipt))
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req wire.FeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items, err := s.backend.SubmitRelevanceFeedback(r.Context(), domain.RelevanceFeedbackBatch(req))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNilItems(items))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		writeError(w, fmt.Errorf("invalid JSON: %v: %w", err, domain.ErrInvalidInput))
		return false
	}
	return true
}

func nonNilItems(items []domain.ResultItem) []domain.ResultItem {
	if items == nil {
		return []domain.ResultItem{}
	}
	return items
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, wire.ErrorResponse{Error: err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("%s %s -> %d (%s)", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
