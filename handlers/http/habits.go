package httpHandler

import (
	"context"
	"net/http"

	"habit-tracker/entities"
	"habit-tracker/usecases"

	"github.com/gin-gonic/gin"
)

type HabitService interface {
	List(ctx context.Context, userID string) ([]entities.Habit, error)
	Create(ctx context.Context, userID string, in usecases.HabitInput) (*entities.Habit, error)
	Update(ctx context.Context, userID, id string, in usecases.HabitInput) (*entities.Habit, error)
	Delete(ctx context.Context, userID, id string) error
}

type HabitHandler struct {
	service HabitService
}

func NewHabitHandler(service HabitService) *HabitHandler {
	return &HabitHandler{service: service}
}

// GetHabits handles GET /api/habits
func (h *HabitHandler) GetHabits(c *gin.Context) {
	habits, err := h.service.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// CreateHabit handles POST /api/habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	var req usecases.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	habit, err := h.service.Create(c.Request.Context(), currentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// UpdateHabit handles PUT /api/habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	var req usecases.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	habit, err := h.service.Update(c.Request.Context(), currentUser(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// DeleteHabit handles DELETE /api/habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
