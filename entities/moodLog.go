package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinMoodLevel = 1
	MaxMoodLevel = 5
)

// MoodLog is the mood entry for one calendar day; (user_id, date) is unique.
type MoodLog struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:uidx_mood_log_user_date" json:"user_id"`
	Date      string `gorm:"type:varchar(10);not null;index;uniqueIndex:uidx_mood_log_user_date" json:"date"`
	MoodLevel int    `gorm:"not null" json:"mood_level"`
	Emoji     string `gorm:"type:varchar(32)" json:"emoji"`
	Note      string `gorm:"type:text" json:"note"`
	CreatedAt string `gorm:"type:varchar(64)" json:"created_at"`
}

func (m *MoodLog) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt == "" {
		m.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return nil
}
