package repositories

import (
	"context"

	"habit-tracker/db"
	"habit-tracker/entities"

	"gorm.io/gorm/clause"
)

type settingsPgRepository struct {
	db db.Database
}

func NewSettingsPgRepository(database db.Database) SettingsRepository {
	return &settingsPgRepository{db: database}
}

// GetOrCreate inserts default settings unless a row exists, then reads it back.
func (r *settingsPgRepository) GetOrCreate(ctx context.Context, userID string) (*entities.UserSettings, error) {
	tx := r.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entities.DefaultSettings(userID)).Error; err != nil {
		return nil, translate("create settings", err)
	}

	var settings entities.UserSettings
	if err := tx.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, translate("get settings", err)
	}
	return &settings, nil
}

func (r *settingsPgRepository) Update(ctx context.Context, userID string, fields map[string]interface{}) (*entities.UserSettings, error) {
	var settings entities.UserSettings
	res := r.db.WithContext(ctx).
		Model(&settings).
		Clauses(clause.Returning{}).
		Where("user_id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return nil, translate("update settings", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, translate("update settings", ErrNotFound)
	}
	return &settings, nil
}
