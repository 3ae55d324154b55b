package httpHandler

import (
	"context"
	"net/http"

	"habit-tracker/entities"
	"habit-tracker/usecases"

	"github.com/gin-gonic/gin"
)

type SettingsService interface {
	Get(ctx context.Context, userID string) (*entities.UserSettings, error)
	Update(ctx context.Context, userID string, in usecases.SettingsInput) (*entities.UserSettings, error)
}

type SettingsHandler struct {
	service SettingsService
}

func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req usecases.SettingsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	settings, err := h.service.Update(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
