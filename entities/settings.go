package entities

const (
	DefaultTheme        = "light"
	DefaultColorPalette = "default"
)

// UserSettings holds display preferences; one row per user.
type UserSettings struct {
	UserID       string `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Theme        string `gorm:"type:varchar(32);not null" json:"theme"`
	ColorPalette string `gorm:"type:varchar(32);not null" json:"color_palette"`
}

func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:       userID,
		Theme:        DefaultTheme,
		ColorPalette: DefaultColorPalette,
	}
}
