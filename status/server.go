package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const shutdownTimeout = 2 * time.Second

// NewRouter builds the read-only status routes over reg
func NewRouter(reg *Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, reg.Snapshot())
	})

	r.Get("/status/{kind}", func(w http.ResponseWriter, req *http.Request) {
		snap := reg.Snapshot()
		switch chi.URLParam(req, "kind") {
		case "counters":
			writeJSON(w, http.StatusOK, snap.Counters)
		case "gauges":
			writeJSON(w, http.StatusOK, snap.Gauges)
		case "labels":
			writeJSON(w, http.StatusOK, snap.Labels)
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown metric kind"})
		}
	})

	return r
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Server serves the status routes until its context is cancelled
type Server struct {
	srv    *http.Server
	ln     net.Listener
	logger *zap.Logger
}

// Listen binds addr so configuration errors surface before the UI starts
func Listen(addr string, reg *Registry, logger *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("status listen %s: %w", addr, err)
	}
	return &Server{
		srv: &http.Server{
			Handler:           NewRouter(reg),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln:     ln,
		logger: logger.Named("status"),
	}, nil
}

// Addr returns the bound address
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts the server down
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(s.ln)
	}()
	s.logger.Info("status server listening", zap.String("addr", s.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("status shutdown: %w", err)
		}
		return nil
	}
}
