package ui

import (
	"net/http"
	"strconv"

	"modeleval/adapters/stats/engines"
	"modeleval/app"
	"modeleval/domain/core"
	"modeleval/internal/errors"

	"github.com/gin-gonic/gin"
)

// pairedRequest is the shared request body for the compute endpoints
type pairedRequest struct {
	X []float64 `json:"x" binding:"required"`
	Y []float64 `json:"y" binding:"required"`
}

type evaluationRequest struct {
	Predictor     []float64 `json:"predictor" binding:"required"`
	Target        []float64 `json:"target" binding:"required"`
	Source        string    `json:"source"`
	PredictorKey  string    `json:"predictor_key"`
	TargetKey     string    `json:"target_key"`
	BuyThreshold  float64   `json:"buy_threshold"`
	SellThreshold float64   `json:"sell_threshold"`
	Theta         float64   `json:"theta"`
}

type liftRequest struct {
	pairedRequest
	BuyThreshold  float64 `json:"buy_threshold"`
	SellThreshold float64 `json:"sell_threshold"`
}

type rocRequest struct {
	pairedRequest
	Theta float64 `json:"theta"`
}

func (s *Server) createEvaluation(c *gin.Context) {
	var req evaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source := req.Source
	if source == "" {
		source = "api"
	}
	predictorKey := req.PredictorKey
	if predictorKey == "" {
		predictorKey = "predictor"
	}
	targetKey := req.TargetKey
	if targetKey == "" {
		targetKey = "target"
	}

	run, err := s.service.Evaluate(c.Request.Context(), app.EvaluationRequest{
		X:            req.Predictor,
		Y:            req.Target,
		Source:       source,
		PredictorKey: core.VariableKey(predictorKey),
		TargetKey:    core.VariableKey(targetKey),
		Options: engines.Options{
			BuyThreshold:  req.BuyThreshold,
			SellThreshold: req.SellThreshold,
			Theta:         req.Theta,
		},
	})
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, run)
}

func (s *Server) getEvaluation(c *gin.Context) {
	id, err := core.ParseRunID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	run, err := s.service.GetEvaluation(c.Request.Context(), id)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, run)
}

func (s *Server) listEvaluations(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	runs, err := s.service.ListEvaluations(c.Request.Context(), limit)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"evaluations": runs, "count": len(runs)})
}

func (s *Server) computeKS(c *gin.Context) {
	var req pairedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, table, err := s.engine.KS().Compare(c.Request.Context(), req.X, req.Y)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": result, "ecdf": table})
}

func (s *Server) computeLift(c *gin.Context) {
	var req liftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := s.engine.Lift().Compute(c.Request.Context(), req.X, req.Y, req.BuyThreshold, req.SellThreshold)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) computeROC(c *gin.Context) {
	var req rocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report, err := s.engine.ROC().Compute(c.Request.Context(), req.X, req.Y, req.Theta)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// renderError maps the error taxonomy onto HTTP statuses
func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeDegenerateInput:
		status = http.StatusUnprocessableEntity
	case errors.CodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
