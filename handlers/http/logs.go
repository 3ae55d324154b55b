package httpHandler

import (
	"context"
	"net/http"

	"habit-tracker/entities"
	"habit-tracker/usecases"

	"github.com/gin-gonic/gin"
)

type LogService interface {
	ListHabitLogs(ctx context.Context, userID string) ([]entities.HabitLog, error)
	LogHabit(ctx context.Context, userID string, in usecases.HabitLogInput) (*entities.HabitLog, error)
	DeleteHabitLog(ctx context.Context, userID, habitID, date string) error
	ListMoodLogs(ctx context.Context, userID string) ([]entities.MoodLog, error)
	LogMood(ctx context.Context, userID string, in usecases.MoodLogInput) (*entities.MoodLog, error)
	DeleteMoodLog(ctx context.Context, userID, date string) error
}

type LogHandler struct {
	service LogService
}

func NewLogHandler(service LogService) *LogHandler {
	return &LogHandler{service: service}
}

// GetHabitLogs handles GET /api/habit-logs
func (h *LogHandler) GetHabitLogs(c *gin.Context) {
	logs, err := h.service.ListHabitLogs(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// LogHabit handles POST /api/habit-logs
func (h *LogHandler) LogHabit(c *gin.Context) {
	var req usecases.HabitLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	log, err := h.service.LogHabit(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteHabitLog handles DELETE /api/habit-logs/:habit_id/:date
func (h *LogHandler) DeleteHabitLog(c *gin.Context) {
	if err := h.service.DeleteHabitLog(c.Request.Context(), currentUser(c), c.Param("habit_id"), c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMoodLogs handles GET /api/mood-logs
func (h *LogHandler) GetMoodLogs(c *gin.Context) {
	logs, err := h.service.ListMoodLogs(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// LogMood handles POST /api/mood-logs
func (h *LogHandler) LogMood(c *gin.Context) {
	var req usecases.MoodLogInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	log, err := h.service.LogMood(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// DeleteMoodLog handles DELETE /api/mood-logs/:date
func (h *LogHandler) DeleteMoodLog(c *gin.Context) {
	if err := h.service.DeleteMoodLog(c.Request.Context(), currentUser(c), c.Param("date")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
