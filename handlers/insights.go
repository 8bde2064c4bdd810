package handlers

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mental-insights/insights"
)

type InsightHandlers struct {
	Service *insights.Service
	Log     *zap.Logger
}

func NewInsightHandlers(svc *insights.Service, log *zap.Logger) *InsightHandlers {
	return &InsightHandlers{Service: svc, Log: log}
}

// GetDaily serves GET /api/insights/daily?date=YYYY-MM-DD: the cached insight
// when one exists, otherwise a partial result computed from the day's
// unprocessed rows.
func (h *InsightHandlers) GetDaily(c *gin.Context) {
	result, err := h.Service.Read(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	message := "Queried insights for " + result.InsightDate
	if result.Source == insights.SourceComputedPartial {
		message = "These daily insights come from unprocessed data (day isn't over?)"
	}
	c.JSON(http.StatusOK, gin.H{
		"source":       result.Source,
		"message":      message,
		"insight_date": result.InsightDate,
		"top_features": result.TopFeatures,
		"correlations": result.Correlations,
	})
}

// ProcessDaily serves POST /api/insights/daily/process. With scheduler=true
// and no date, the target defaults to yesterday in UTC.
func (h *InsightHandlers) ProcessDaily(c *gin.Context) {
	date := c.Query("date")
	if date == "" && c.Query("scheduler") != "" {
		date = time.Now().UTC().AddDate(0, 0, -1).Format(time.DateOnly)
	}

	result, err := h.Service.Promote(date)
	if errors.Is(err, insights.ErrHistoricalRecompute) {
		// Daily insight committed; only the summary append failed. Report it
		// distinctly so the caller can retry the summary alone.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        "daily insights were saved, but the historical summary update failed; retry via recompute",
			"insight_date": result.InsightDate,
			"top_features": result.TopFeatures,
			"correlations": result.Correlations,
		})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Historical insights were updated to include " + result.InsightDate + " data.",
		"insight_date": result.InsightDate,
		"top_features": result.TopFeatures,
		"correlations": result.Correlations,
	})
}

// GetSummary serves GET /api/insights/summary: the latest historical insight.
func (h *InsightHandlers) GetSummary(c *gin.Context) {
	result, err := h.Service.Summarize()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Latest historic insights (computed using all data)",
		"created_at":    result.CreatedAt,
		"time_range":    result.TimeRange,
		"days_analyzed": result.DaysAnalyzed,
		"top_features":  result.TopFeatures,
		"correlations":  result.Correlations,
	})
}

// Recompute serves POST /api/insights/recompute: a full-corpus summary over
// every raw row, appended to the historical log.
func (h *InsightHandlers) Recompute(c *gin.Context) {
	result, err := h.Service.RecomputeAll()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Historical insights processed and saved.",
		"time_range":    result.TimeRange,
		"days_analyzed": result.DaysAnalyzed,
		"top_features":  result.TopFeatures,
		"correlations":  result.Correlations,
	})
}

// fail maps the taxonomy to HTTP statuses. Expected outcomes keep their
// specific message; unexpected failures are logged and reported generically so
// store details never leak.
func (h *InsightHandlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, insights.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, insights.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, insights.ErrAlreadyPromoted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, insights.ErrInsufficientCoverage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.Log.Error("insight request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
