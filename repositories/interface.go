package repositories

import (
	"context"
	"errors"

	"habit-tracker/entities"
)

var (
	// ErrNotFound means no row matched the id under the given user scope.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a unique index rejected the write.
	ErrDuplicate = errors.New("duplicate record")
)

// DateRange bounds a query by calendar date, both ends inclusive (YYYY-MM-DD).
type DateRange struct {
	From string
	To   string
}

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

type HabitRepository interface {
	Create(ctx context.Context, habit *entities.Habit) error
	GetByID(ctx context.Context, userID, id string) (*entities.Habit, error)
	GetByUserID(ctx context.Context, userID string) ([]entities.Habit, error)
	Update(ctx context.Context, userID, id, name, color string) (*entities.Habit, error)
	DeleteWithLogs(ctx context.Context, userID, id string) error
}

type HabitLogRepository interface {
	// Upsert writes the log for (user, habit, date) in one statement and fills
	// log with the stored row. An existing row keeps its id and created_at.
	Upsert(ctx context.Context, log *entities.HabitLog) error
	GetByUserID(ctx context.Context, userID string) ([]entities.HabitLog, error)
	GetByHabitID(ctx context.Context, userID, habitID string) ([]entities.HabitLog, error)
	GetInRange(ctx context.Context, userID string, r DateRange) ([]entities.HabitLog, error)
	DeleteByDate(ctx context.Context, userID, habitID, date string) error
}

type MoodLogRepository interface {
	// Upsert writes the mood for (user, date) in one statement and fills log with the stored row.
	Upsert(ctx context.Context, log *entities.MoodLog) error
	GetByUserID(ctx context.Context, userID string) ([]entities.MoodLog, error)
	GetInRange(ctx context.Context, userID string, r DateRange) ([]entities.MoodLog, error)
	DeleteByDate(ctx context.Context, userID, date string) error
}

type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entities.UserSettings, error)
	Update(ctx context.Context, userID string, fields map[string]interface{}) (*entities.UserSettings, error)
}
