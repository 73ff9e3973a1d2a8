package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"adcheck-bot/config"
	"adcheck-bot/models"
	"adcheck-bot/repository"
	"adcheck-bot/service"
)

// AnalyzeHandler exposes the analysis pipeline over HTTP: a health probe,
// a status snapshot for monitoring and a text-only analyze endpoint for
// smoke tests.
type AnalyzeHandler struct {
	analyzer  *service.Analyzer
	repo      *repository.PrecedentRepository
	cfg       *config.Config
	startedAt time.Time
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analyzer *service.Analyzer, repo *repository.PrecedentRepository, cfg *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		repo:      repo,
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

type analyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// Health handles GET /health
func (h *AnalyzeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Status handles GET /status
func (h *AnalyzeHandler) Status(c *gin.Context) {
	stats := h.analyzer.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"corpus_size":         h.repo.Count(),
			"embedding_dimension": h.repo.Dimensions(),
			"embedding_model":     h.cfg.EmbeddingModel,
			"primary_model":       h.cfg.PrimaryGenerativeModel,
			"fallback_model":      h.cfg.FallbackGenerativeModel,
			"top_n":               h.analyzer.TopN(),
			"uptime_sec":          int64(time.Since(h.startedAt).Seconds()),
			"processed":           stats.Processed,
			"safety":              stats.Safety,
			"errors":              stats.Errors,
		},
	})
}

// Analyze handles POST /api/analyze. The optional ?model=fallback query
// routes the request to the fallback generative model.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "text is required",
			},
		})
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), service.AnalyzeRequest{
		Creative:    models.Creative{Text: req.Text},
		UseFallback: c.Query("model") == "fallback",
	})
	if err != nil {
		status := http.StatusBadGateway
		code := "ANALYSIS_FAILED"
		if errors.Is(err, service.ErrEmptyCreative) {
			status = http.StatusBadRequest
			code = "INVALID_REQUEST"
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	if result.Verdict.Blocked() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CONTENT_BLOCKED",
				"message": result.Verdict.Text,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"request_id":   result.RequestID,
			"verdict":      result.Verdict.Text,
			"preprocessed": result.Verdict.Preprocessed,
			"model":        result.Verdict.Model,
			"top_cases":    result.TopCases,
			"total_tokens": result.TotalTokens,
			"duration_sec": result.Duration.Seconds(),
		},
	})
}

// Router assembles the ops HTTP surface.
func Router(h *AnalyzeHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", h.Health)
	r.GET("/status", h.Status)

	api := r.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
	}

	return r
}
