package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitLog is one day's completion state for a habit.
// (user_id, habit_id, date) is unique; writes go through an upsert on that key.
type HabitLog struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:uidx_habit_log_user_habit_date" json:"user_id"`
	HabitID   string `gorm:"type:varchar(36);not null;index;uniqueIndex:uidx_habit_log_user_habit_date" json:"habit_id"`
	Date      string `gorm:"type:varchar(10);not null;index;uniqueIndex:uidx_habit_log_user_habit_date" json:"date"`
	Completed bool   `gorm:"not null" json:"completed"`
	CreatedAt string `gorm:"type:varchar(64)" json:"created_at"`
}

func (l *HabitLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.CreatedAt == "" {
		l.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return nil
}
