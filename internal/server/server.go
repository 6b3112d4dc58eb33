// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the recommendation engine and the catalog over a
// JSON HTTP API. Every response uses the same envelope:
//
//	{"success": true, "data": ...}
//	{"success": false, "error": "...", "kind": "..."}
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/internal/engine"
	"github.com/pdiddy/internmatch/internal/logger"
	"github.com/pdiddy/internmatch/pkg/types"
)

const defaultShutdownTimeout = 10 * time.Second

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	Config types.ServerConfig
	Engine *engine.Engine
	Logger *zap.Logger

	// ModelVersion is reported by the health endpoint.
	ModelVersion string
}

// Server is the HTTP API.
type Server struct {
	cfg          types.ServerConfig
	engine       *engine.Engine
	log          *zap.Logger
	modelVersion string
	handler      http.Handler
	httpServer   *http.Server
}

// New builds a server and its routes. It does not start listening.
func New(opts Options) *Server {
	s := &Server{
		cfg:          opts.Config,
		engine:       opts.Engine,
		log:          logger.OrNop(opts.Logger),
		modelVersion: opts.ModelVersion,
	}
	if s.cfg.BrowseLimit <= 0 {
		s.cfg.BrowseLimit = 20
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /api/internships", s.handleInternships)
	mux.HandleFunc("GET /api/sectors", s.handleSectors)
	mux.HandleFunc("GET /api/locations", s.handleLocations)
	mux.HandleFunc("GET /api/skills", s.handleSkills)
	mux.HandleFunc("GET /api/education-levels", s.handleEducationLevels)
	mux.HandleFunc("POST /api/admin/refit", s.handleRefit)
	mux.HandleFunc("/", s.handleNotFound)

	s.handler = s.withRequestID(s.withLogging(s.withRecover(s.withCORS(mux))))
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("serving %s: %w", s.httpServer.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.httpServer.Shutdown(sctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
