// Package api exposes the SkyDesk HTTP endpoints: conversational message
// processing, feedback capture, booking listings, analytics, and cache
// statistics.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SkyDeskLabs/SkyDesk/internal/cache"
	"github.com/SkyDeskLabs/SkyDesk/internal/flow"
	"github.com/SkyDeskLabs/SkyDesk/internal/nlu"
	"github.com/SkyDeskLabs/SkyDesk/internal/store"
)

// Server wires the HTTP layer to the dispatcher and its backing services.
type Server struct {
	dispatcher *flow.Dispatcher
	classifier nlu.Classifier
	store      store.Store
	cache      cache.Cache
	addr       string
}

// Config carries the dependencies for NewServer.
type Config struct {
	Dispatcher *flow.Dispatcher
	Classifier nlu.Classifier
	Store      store.Store
	Cache      cache.Cache
	Addr       string
}

// NewServer builds a Server. Addr defaults to :8080.
func NewServer(cfg Config) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}
	return &Server{
		dispatcher: cfg.Dispatcher,
		classifier: cfg.Classifier,
		store:      cfg.Store,
		cache:      cfg.Cache,
		addr:       addr,
	}
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/message", s.messageHandler)
	mux.HandleFunc("/api/feedback", s.feedbackHandler)
	mux.HandleFunc("/api/bookings/", s.bookingsHandler)
	mux.HandleFunc("/api/analytics", s.analyticsHandler)
	mux.HandleFunc("/api/cache/stats", s.cacheStatsHandler)
	mux.HandleFunc("/api/health", s.healthHandler)
	return mux
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: SkyDesk API listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down API server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("API server failed: %w", err)
		}
		return nil
	}
}
