// file: internal/server/server.go
// version: 1.3.0
// guid: 0d2f4a6c-8e1b-43d7-95a9-3f5b7d9c1e62

// Package server exposes the search and library surfaces over a gin REST
// API. Handlers are thin: composition, detection and scoring live in their
// own packages.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/booktime/booktime/internal/catalog"
	"github.com/booktime/booktime/internal/config"
	"github.com/booktime/booktime/internal/database"
	"github.com/booktime/booktime/internal/detector"
	"github.com/booktime/booktime/internal/metrics"
	"github.com/booktime/booktime/internal/models"
	"github.com/booktime/booktime/internal/relevance"
	"github.com/booktime/booktime/internal/search"
	"github.com/booktime/booktime/internal/server/middleware"
)

// RemoteSearcher is the remote search source (Open Library in production,
// a stub in tests).
type RemoteSearcher interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.Book, error)
}

// Server wires the HTTP surface to the store, catalog and matching engine.
type Server struct {
	router   *gin.Engine
	store    database.Store
	catalog  *catalog.Catalog
	detector *detector.Detector
	scorer   *relevance.Scorer
	composer *search.Composer
	remote   RemoteSearcher
}

// New builds a fully-routed server.
func New(store database.Store, cat *catalog.Catalog, remote RemoteSearcher) *Server {
	metrics.Register()

	det := detector.New(cat)
	scorer := relevance.NewScorer()

	s := &Server{
		store:    store,
		catalog:  cat,
		detector: det,
		scorer:   scorer,
		composer: search.NewComposer(cat, det, scorer),
		remote:   remote,
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the gin engine, used by tests and by Run.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	cfg := config.AppConfig
	if cfg.RateLimitPerMin > 0 {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst)
		router.Use(limiter.Middleware())
	}
	router.Use(middleware.MaxRequestBodySize(cfg.MaxBodyBytes))

	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/search", s.handleSearch)
		api.GET("/search/local", s.handleLocalSearch)

		api.GET("/books", s.handleListBooks)
		api.POST("/books", s.handleCreateBook)
		api.GET("/books/:id", s.handleGetBook)
		api.PUT("/books/:id", s.handleUpdateBook)
		api.DELETE("/books/:id", s.handleDeleteBook)

		api.POST("/series/detect", s.handleDetectSeries)
		api.GET("/series/catalog", s.handleListCatalog)
	}
	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("[INFO] received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
