// Package api exposes the query façade over HTTP. The transport is a
// thin shell: the request body is the request envelope, the response
// body is the response envelope, and all outcome signaling happens
// inside the envelope rather than through HTTP status codes.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
	"github.com/querygate/querygate/internal/models"
	"github.com/querygate/querygate/internal/router"
)

// Server wraps the gin engine around the request router
type Server struct {
	router   *router.Router
	registry *db.Registry
	engine   *gin.Engine
}

// NewServer creates the HTTP server and registers all routes
func NewServer(rt *router.Router, registry *db.Registry, cfg config.APIConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		router:   rt,
		registry: registry,
		engine:   engine,
	}

	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	engine.Use(corsMiddleware(corsOrigin))

	if cfg.RateLimit > 0 {
		engine.Use(rateLimitMiddleware(rate.Limit(cfg.RateLimit)))
	}

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/query", s.query)
		v1.GET("/backends", s.backends)
		v1.GET("/health", s.health)
	}

	return s
}

// Run starts the HTTP server on the given address
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Engine exposes the underlying gin engine, mainly for tests
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// query handles POST /api/v1/query
func (s *Server) query(c *gin.Context) {
	var req models.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Error("Invalid request: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, s.router.Handle(c.Request.Context(), req))
}

// backends handles GET /api/v1/backends
func (s *Server) backends(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"backends": s.registry.Kinds()})
}

// health handles GET /api/v1/health
func (s *Server) health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	for _, kind := range s.registry.Kinds() {
		handler, _ := s.registry.Get(kind)
		if err := handler.Ping(c.Request.Context()); err != nil {
			checks[kind] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[kind] = "ok"
		}
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "backends": checks})
}

func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func rateLimitMiddleware(limit rate.Limit) gin.HandlerFunc {
	limiter := rate.NewLimiter(limit, int(limit)+1)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.Error("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
