package handlers

import (
	"errors"
	"net/http"
	"strings"

	"cryptomaster/analysis"
	"cryptomaster/models"

	"github.com/gin-gonic/gin"
)

type AnalysisRequest struct {
	Coins []string `json:"coins"`
}

// coinsParam reads a comma separated ?coins= list.
func coinsParam(c *gin.Context) []string {
	raw := c.Query("coins")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func bindCoins(c *gin.Context) ([]string, bool) {
	var request AnalysisRequest
	if c.Request.ContentLength == 0 {
		return coinsParam(c), true
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}
	return request.Coins, true
}

// GetAnalysis returns the cached analysis state. It never starts a run.
func (h *Handler) GetAnalysis(c *gin.Context) {
	c.JSON(http.StatusOK, h.query.Snapshot(c.Request.Context(), coinsParam(c)))
}

func (h *Handler) RunAnalysis(c *gin.Context) {
	coins, ok := bindCoins(c)
	if !ok {
		return
	}

	if _, err := h.query.Run(c.Request.Context(), coins); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis generation failed"})
		return
	}
	c.JSON(http.StatusOK, h.query.Snapshot(c.Request.Context(), coins))
}

func (h *Handler) RefetchAnalysis(c *gin.Context) {
	coins, ok := bindCoins(c)
	if !ok {
		return
	}

	if _, err := h.query.Refetch(c.Request.Context(), coins); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis generation failed"})
		return
	}
	c.JSON(http.StatusOK, h.query.Snapshot(c.Request.Context(), coins))
}

func (h *Handler) Predict(c *gin.Context) {
	tf := models.Timeframe(c.DefaultQuery("timeframe", string(models.Timeframe7d)))

	prediction, err := h.aggregator.Predict(c.Request.Context(), c.Param("coin"), tf)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidTimeframe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timeframe must be one of 24h, 7d, 30d"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Prediction failed"})
		return
	}
	c.JSON(http.StatusOK, prediction)
}
