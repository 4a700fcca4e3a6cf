package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magnusgp/fermatter/internal/cache"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/sources"
)

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// maxDocumentBytes bounds the size of one analyze request body.
const maxDocumentBytes = 1 << 20

// handleAnalyze handles POST /analyze.
//
// Response:
//
//	200 OK: model.AnalyzeResponse
//	400 Bad Request: Validation error
func (s *Server) handleAnalyze(c *gin.Context) {
	logger := slog.With("request_id", requestID(c), "handler", "analyze")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentBytes)

	var req model.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Field 'text' is required",
			Code:  "MISSING_TEXT",
		})
		return
	}

	key := cache.RequestKey(req)
	if s.cache != nil {
		if data, found := s.cache.Get(key); found {
			logger.Debug("Cache hit")
			c.Data(http.StatusOK, "application/json", data)
			return
		}
	}

	resp := s.reviewer.Analyze(c.Request.Context(), req)
	logger.Info("Analysis complete",
		"paragraphs", resp.Meta.ParagraphCount,
		"observations", len(resp.Observations),
		"latency_ms", resp.Meta.LatencyMS,
		"used_llm", resp.Meta.UsedLLM)

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.cache.Set(key, data, s.cacheTTL)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleSources handles GET /sources. It returns the built-in source library.
func (s *Server) handleSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": sources.Library})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": ServiceVersion,
	})
}
