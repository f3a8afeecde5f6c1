package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jukebox/internal/config"
	"jukebox/internal/logging"
	"jukebox/internal/metadata"
)

// Server exposes the catalog over HTTP.
type Server struct {
	bind    string
	logger  *slog.Logger
	library *LibraryService
	router  chi.Router

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds the router for store using the API and TMDB image
// settings from cfg.
func NewServer(cfg *config.Config, store LibraryReader, logger *slog.Logger) *Server {
	bind := ""
	imageBase := ""
	if cfg != nil {
		bind = strings.TrimSpace(cfg.API.Bind)
		imageBase = cfg.TMDB.ImageBaseURL
	}
	s := &Server{
		bind:    bind,
		logger:  logging.NewComponentLogger(logger, "api"),
		library: NewLibraryService(store, metadata.NewImages(imageBase)),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleIndex)
		r.Route("/library", func(r chi.Router) {
			r.Get("/movies", s.handleListMovies)
			r.Get("/movies/{id}", s.handleGetMovie)
		})
		r.Get("/stream/{id}", s.handleStream)
	})
	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured bind address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()
	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api shutdown: %w", err)
	}
	s.logger.Info("api server stopped")
	return nil
}

// Addr returns the bound listener address once Run has started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, IndexResponse{Message: "Jukebox API"})
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.library.List(r.Context())
	if err != nil {
		s.logger.Error("list movies failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to list movies")
		return
	}
	s.writeJSON(w, http.StatusOK, movies)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}
	movie, err := s.library.Describe(r.Context(), id)
	if err != nil {
		s.logger.Error("get movie failed", logging.Int64("id", id), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load movie")
		return
	}
	if movie == nil {
		s.writeError(w, http.StatusNotFound, "Movie not found")
		return
	}
	s.writeJSON(w, http.StatusOK, movie)
}

func (s *Server) movieID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid movie ID")
		return 0, false
	}
	return id, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.Int("status", ww.Status()),
			logging.Int("bytes", ww.BytesWritten()),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
