package debug

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/statekit/internal/model"
	"github.com/five82/statekit/internal/state"
)

const shutdownTimeout = 2 * time.Second

// Snapshot is the body served on /state.
type Snapshot struct {
	Context    string      `json:"context"`
	Dispatches uint64      `json:"dispatches"`
	UpdatedAt  time.Time   `json:"updated_at"`
	State      model.State `json:"state"`
}

// Server exposes the latest published state and metrics over HTTP.
type Server struct {
	registry *prometheus.Registry
	metrics  *Metrics
	logger   *slog.Logger
	started  time.Time

	mu       sync.RWMutex
	snapshot Snapshot
	detach   state.Unsubscribe
}

// New creates a Server with its own registry. A nil logger uses slog.Default.
func New(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Server{
		registry: registry,
		metrics:  NewMetrics(registry),
		logger:   logger,
		started:  time.Now(),
	}
}

// Metrics returns the collectors the UI and poller report to.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Watch mirrors store into the /state snapshot until another store is
// watched. contextID labels the snapshot.
func (s *Server) Watch(store *model.Store, contextID string) error {
	current, err := store.GetState()
	if err != nil {
		return fmt.Errorf("watch store: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach != nil {
		if err := s.detach(); err != nil {
			return fmt.Errorf("detach previous store: %w", err)
		}
	}
	s.snapshot = Snapshot{
		Context:   contextID,
		UpdatedAt: time.Now(),
		State:     maps.Clone(current),
	}
	s.detach = store.Subscribe(func() error {
		next, err := store.GetState()
		if err != nil {
			return err
		}
		s.publish(next)
		return nil
	})
	s.metrics.attachments.Inc()
	s.logger.Debug("debug server watching store", "context", contextID)
	return nil
}

// Close stops mirroring the watched store.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detach == nil {
		return nil
	}
	if err := s.detach(); err != nil {
		return fmt.Errorf("detach store: %w", err)
	}
	s.detach = nil
	return nil
}

func (s *Server) publish(current model.State) {
	s.mu.Lock()
	s.snapshot.State = maps.Clone(current)
	s.snapshot.Dispatches++
	s.snapshot.UpdatedAt = time.Now()
	s.mu.Unlock()
	s.metrics.dispatches.Inc()
}

// Snapshot returns the latest published state.
func (s *Server) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.State = maps.Clone(snap.State)
	return snap
}

// Handler returns the router serving /state, /healthz and /metrics.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/state", s.handleState)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("debug listen %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("debug server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("debug server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("debug shutdown: %w", err)
		}
		return nil
	}
}
