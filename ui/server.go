package ui

import (
	"net/http"

	"modeleval/adapters/stats/engines"
	"modeleval/app"
	"modeleval/internal"

	"github.com/gin-gonic/gin"
)

// Server exposes the metric engines and stored evaluations as a JSON API
type Server struct {
	router  *gin.Engine
	engine  *engines.MetricsEngine
	service *app.EvaluationService
	logger  *internal.Logger
}

// Config holds server configuration
type Config struct {
	Port    string
	GinMode string
}

// NewServer creates the API server
func NewServer(config Config, engine *engines.MetricsEngine, service *app.EvaluationService, logger *internal.Logger) *Server {
	if config.GinMode != "" {
		gin.SetMode(config.GinMode)
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	s := &Server{
		router:  gin.Default(),
		engine:  engine,
		service: service,
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/evaluations", s.createEvaluation)
		v1.GET("/evaluations", s.listEvaluations)
		v1.GET("/evaluations/:id", s.getEvaluation)

		v1.POST("/ks", s.computeKS)
		v1.POST("/lift", s.computeLift)
		v1.POST("/roc", s.computeROC)
	}
}

// Router returns the underlying gin engine (exposed for tests)
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the server on the configured port
func (s *Server) Run(port string) error {
	s.logger.Info("API server listening on :%s", port)
	return s.router.Run(":" + port)
}
