package usecases

import (
	"context"
	"strings"

	"habit-tracker/entities"
	"habit-tracker/repositories"

	"github.com/rs/zerolog/log"
)

type HabitInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,max=32"`
}

type HabitUseCase struct {
	habits repositories.HabitRepository
}

func NewHabitUseCase(habits repositories.HabitRepository) *HabitUseCase {
	return &HabitUseCase{habits: habits}
}

// List returns the user's habits, oldest first
func (uc *HabitUseCase) List(ctx context.Context, userID string) ([]entities.Habit, error) {
	habits, err := uc.habits.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []entities.Habit{}
	}
	return habits, nil
}

// Create adds a habit owned by userID
func (uc *HabitUseCase) Create(ctx context.Context, userID string, in HabitInput) (*entities.Habit, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	habit := &entities.Habit{UserID: userID, Name: in.Name, Color: in.Color}
	if err := uc.habits.Create(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Update replaces name and color of a habit the user owns
func (uc *HabitUseCase) Update(ctx context.Context, userID, id string, in HabitInput) (*entities.Habit, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	habit, err := uc.habits.Update(ctx, userID, id, in.Name, in.Color)
	if err != nil {
		return nil, mapNotFound(err, "Habit not found")
	}
	return habit, nil
}

// Delete removes a habit together with all of its logs
func (uc *HabitUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.habits.DeleteWithLogs(ctx, userID, id); err != nil {
		return mapNotFound(err, "Habit not found")
	}
	log.Info().Str("user_id", userID).Str("habit_id", id).Msg("habit deleted with its logs")
	return nil
}
