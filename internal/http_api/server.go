package http_api

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/funildigital/prelander/internal/config"
	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/pkg/logger"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

//go:embed templates/*.html
var templatesFS embed.FS

// HTTPServer is the HTTP server struct that will serve the landing pages,
// the token endpoints and the public assets
type HTTPServer struct {
	// logger is the logger instance
	logger *logger.Logger

	// router is the HTTP router
	router *gin.Engine
	// config holds the port, asset paths and redirect destinations
	config *config.Config

	// server is the underlying HTTP server
	server *http.Server

	// ledger is the token ledger
	ledger models.LedgerI
	// catalog resolves slugs to model descriptors
	catalog models.Catalog
	// notificator pushes purchase notices to the operator
	notificator models.NotificationService
}

// NewHTTPServer creates a new HTTP server instance
func NewHTTPServer(ledger models.LedgerI, catalog models.Catalog, notificator models.NotificationService, cfg *config.Config, logger *logger.Logger) models.APIServer {
	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	server := &HTTPServer{
		router:      router,
		config:      cfg,
		ledger:      ledger,
		catalog:     catalog,
		notificator: notificator,
		logger:      logger,
	}

	// Define routes
	server.routes()

	return server
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	addr := fmt.Sprintf("0.0.0.0:%v", s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	s.logger.Info("Starting HTTP server", " address ", addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Fatal("Failed to start the HTTP server: ", err)
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *HTTPServer) Shutdown() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server...")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown error: %w", err)
	}

	s.logger.Info("HTTP server shut down successfully")
	return nil
}
