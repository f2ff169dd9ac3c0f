// Package server exposes the projection calculations as a JSON API.
//
// Requests carry everything a calculation needs, the server keeps no state
// besides the way to load the current dataset.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/etnz/horizon"
	"github.com/gin-gonic/gin"
)

// DatasetFunc loads the current dataset.
type DatasetFunc func(ctx context.Context) (*horizon.Dataset, error)

// Server is the HTTP server of the API.
type Server struct {
	router  *gin.Engine
	dataset DatasetFunc
}

// New creates a server. A nil dataset disables GET /api/dataset.
func New(dataset DatasetFunc) *Server {
	s := &Server{
		router:  gin.New(),
		dataset: dataset,
	}
	s.router.Use(gin.Recovery())
	s.router.Use(cors)
	s.RegisterRoutes(s.router.Group("/api"))
	return s
}

// RegisterRoutes registers the API routes under router.
func (s *Server) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthz", s.Healthz)
	router.GET("/dataset", s.Dataset)

	router.POST("/scenario", s.Scenario)
	router.POST("/pl", s.PL)
	router.POST("/gauge", s.Gauge)
	router.POST("/projection", s.Projection)
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on addr and serves the API.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

func fail(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}

// Healthz answers as long as the server runs.
// GET /api/healthz
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Dataset returns the current dataset.
// GET /api/dataset
func (s *Server) Dataset(c *gin.Context) {
	if s.dataset == nil {
		fail(c, http.StatusServiceUnavailable, errors.New("no dataset configured"))
		return
	}
	ds, err := s.dataset(c.Request.Context())
	if err != nil {
		fail(c, http.StatusBadGateway, err)
		return
	}
	c.JSON(http.StatusOK, ds)
}
