package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quantpulse/riskscore/models"
)

// ScoreReader is the read contract the engine exposes to presentation
// collaborators: the persisted series by instrument and date range, ordered
// by date ascending.
type ScoreReader interface {
	ScoresByInstrument(ctx context.Context, instrument string, from, to time.Time) ([]models.RiskScore, error)
	LatestScores(ctx context.Context) ([]models.RiskScore, error)
}

type QueryParams struct {
	Instrument string `form:"instrument" binding:"required"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type handler struct {
	scores ScoreReader
}

func (h *handler) GetScores(c *gin.Context) {
	var params QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var from, to time.Time
	var err error
	if params.From != "" {
		from, err = time.Parse("2006-01-02", params.From)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
			return
		}
	}
	if params.To != "" {
		to, err = time.Parse("2006-01-02", params.To)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
			return
		}
	}

	scores, err := h.scores.ScoresByInstrument(c.Request.Context(), params.Instrument, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scores)
}

func (h *handler) GetLatestScores(c *gin.Context) {
	scores, err := h.scores.LatestScores(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, scores)
}

func SetupRoutes(scores ScoreReader) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	h := &handler{scores: scores}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/scores", h.GetScores)
	r.GET("/api/scores/latest", h.GetLatestScores)

	return r
}
