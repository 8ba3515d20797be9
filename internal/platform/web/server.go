// Package web serves the game over HTTP: a small JSON API and a websocket
// endpoint where every connection plays its own board.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-concentration/internal/config"
	"github.com/vovakirdan/tui-concentration/internal/storage"
)

// Config holds configuration for the web server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// Game is the board configuration every session plays with.
	Game config.ConcentrationConfig

	// Seed fixes the deal of every board. Zero deals from the clock.
	Seed int64

	// Store records finished and abandoned sessions. May be nil.
	Store *storage.Store

	// Logger receives server events. A default logger is used if nil.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		Game:    config.DefaultConcentrationConfig(),
	}
}

// Server bundles the router and the shared dependencies of all sessions.
type Server struct {
	r        *chi.Mux
	cfg      Config
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// New constructs a Server and registers its routes.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "concentration-web",
		})
	}

	s := &Server{
		r:      chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(s.requestLogger)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/api/config", s.handleConfig)
	})

	s.r.Get("/ws", s.handleWS)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the router (useful for tests).
func (s *Server) Router() http.Handler { return s.r }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// Open websocket sessions end with ctx.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", s.cfg.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// configResponse is the public view of the board configuration.
type configResponse struct {
	Size      int     `json:"size"`
	Pairs     int     `json:"pairs"`
	FlipDelay float64 `json:"flip_delay"`
	TickRate  int     `json:"tick_rate"`
	StatusRow int     `json:"status_row"`
	StatusCol int     `json:"status_col"`
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Game
	writeJSON(w, http.StatusOK, configResponse{
		Size:      g.Board.Size,
		Pairs:     g.Board.Pairs,
		FlipDelay: g.Timing.FlipDelay,
		TickRate:  g.Timing.TickRate,
		StatusRow: g.Board.Size - 1,
		StatusCol: g.Board.Size - 1,
	})
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
