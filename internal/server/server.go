// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the digest over HTTP: the paper list page, the chat
// page and its JSON endpoint, health, and Prometheus metrics.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/paper-digest/internal/logger"
	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/pkg/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 10 * time.Second

// Digest is the pipeline the handlers call. digest.Service implements it.
type Digest interface {
	List(ctx context.Context) ([]types.SummarizedPaper, error)
	Ask(ctx context.Context, question string) (types.ChatExchange, error)
}

// Server is the HTTP front end with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	log    logger.Logger
	debug  bool
}

// New builds the router with recovery, request ID and request logging
// middleware and registers the routes.
func New(cfg types.ServerConfig, digest Digest, log logger.Logger, m *metrics.Metrics) (*Server, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"date": func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(log), RequestIDMiddleware(), LoggerMiddleware(log))
	router.SetHTMLTemplate(tmpl)

	h := &handlers{digest: digest, log: log}
	router.GET("/", h.index)
	router.GET("/chat", h.chatPage)
	router.POST("/chat", h.chat)
	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return &Server{
		router: router,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log:   log,
		debug: cfg.Debug,
	}, nil
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the listen address.
func (s *Server) Addr() string { return s.server.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server",
			logger.String("address", s.Addr()),
			logger.Bool("debug", s.debug),
		)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down HTTP server", logger.Duration("timeout", shutdownTimeout))
	}

	// ctx is already cancelled here.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.log.Info("HTTP server stopped gracefully")
	return nil
}
