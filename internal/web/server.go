// Package web serves the desk views over a JSON HTTP API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"signaldesk/internal/config"
	"signaldesk/internal/models"
	"signaldesk/internal/refresh"
)

// Server exposes the desk pipeline over HTTP. It owns no idea state: every
// request takes the refresher's current snapshot and recomputes the view.
type Server struct {
	httpServer *http.Server
	refresher  *refresh.Refresher
	cfg        *config.Config
	logger     zerolog.Logger
	catalysts  []models.Catalyst
}

// NewServer creates the HTTP server. catalysts may be nil; the earnings
// badge is simply omitted then.
func NewServer(r *refresh.Refresher, cfg *config.Config, catalysts []models.Catalyst, logger zerolog.Logger) *Server {
	s := &Server{
		refresher: r,
		cfg:       cfg,
		logger:    logger,
		catalysts: catalysts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ideas", s.logged(s.handleIdeas))
	mux.HandleFunc("/api/summary", s.logged(s.handleSummary))
	mux.HandleFunc("/healthz", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Start runs the server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.cfg.Server.Addr).Msg("web server starting")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logged(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		h(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
