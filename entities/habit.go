package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string     `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Name      string     `gorm:"not null" json:"name"`
	Color     string     `gorm:"type:varchar(32)" json:"color"`
	CreatedAt string     `gorm:"type:varchar(64)" json:"created_at"`
	Logs      []HabitLog `gorm:"foreignKey:HabitID;constraint:OnDelete:CASCADE" json:"-"`
}

func (h *Habit) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if h.CreatedAt == "" {
		h.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return nil
}
