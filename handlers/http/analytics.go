package httpHandler

import (
	"context"
	"net/http"

	"habit-tracker/usecases"

	"github.com/gin-gonic/gin"
)

type AnalyticsService interface {
	Summarize(ctx context.Context, userID string) (*usecases.Summary, error)
	RequestInsight(ctx context.Context, userID string) (string, error)
}

type AnalyticsHandler struct {
	service AnalyticsService
}

func NewAnalyticsHandler(service AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetSummary handles GET /api/analytics/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.Summarize(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetInsights handles GET /api/analytics/ai-insights
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	text, err := h.service.RequestInsight(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"insights": text})
}
