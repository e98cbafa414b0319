// Package api exposes the satellite catalog and geometry derivations over
// a small REST surface.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slimtomatillo/ephemeris/internal/auth"
	"github.com/slimtomatillo/ephemeris/internal/catalog"
	"github.com/slimtomatillo/ephemeris/internal/metrics"
	"github.com/slimtomatillo/ephemeris/internal/uphere"
)

// StatsProvider reports upstream-client pacing state for /stats.
type StatsProvider interface {
	Stats() uphere.Stats
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	addr    string
	catalog *catalog.Service
	client  StatsProvider
	logger  *slog.Logger
	engine  *gin.Engine
}

// New constructs a server with routes and middleware.
func New(addr string, cat *catalog.Service, client StatsProvider, authCfg auth.Config, logger *slog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(logger))
	engine.Use(auth.Middleware(authCfg))

	server := &Server{
		addr:    addr,
		catalog: cat,
		client:  client,
		logger:  logger,
		engine:  engine,
	}
	server.registerRoutes()
	return server
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/satellites", s.handleSatellites)
		v1.GET("/satellites/search", s.handleSearch)
		v1.GET("/satellites/:id", s.handleSatelliteByID)
		v1.GET("/countries", s.handleCountries)
		v1.GET("/distance", s.handleDistance)
		v1.GET("/look", s.handleLook)
		v1.GET("/stats", s.handleStats)
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// writeUpstreamError maps fetch-layer failures onto HTTP statuses. The
// upstream is a dependency, so its auth and transport failures surface as
// gateway errors rather than server errors.
func (s *Server) writeUpstreamError(c *gin.Context, err error) {
	var remote *uphere.RemoteError
	if errors.As(err, &remote) {
		switch remote.Kind {
		case uphere.KindRateLimited:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": remote.Error()})
		case uphere.KindUnauthorized:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "upstream rejected credentials",
				"hint":  "check EPHEMERIS_API_KEY",
			})
		case uphere.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": remote.Error()})
		case uphere.KindTimeout:
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": remote.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": remote.Error()})
		}
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
