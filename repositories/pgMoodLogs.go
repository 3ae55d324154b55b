package repositories

import (
	"context"

	"habit-tracker/db"
	"habit-tracker/entities"

	"gorm.io/gorm/clause"
)

type moodLogPgRepository struct {
	db db.Database
}

func NewMoodLogPgRepository(database db.Database) MoodLogRepository {
	return &moodLogPgRepository{db: database}
}

func (r *moodLogPgRepository) Upsert(ctx context.Context, log *entities.MoodLog) error {
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"mood_level", "emoji", "note"}),
			},
			clause.Returning{},
		).
		Create(log).Error
	return translate("upsert mood log", err)
}

func (r *moodLogPgRepository) GetByUserID(ctx context.Context, userID string) ([]entities.MoodLog, error) {
	var logs []entities.MoodLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error
	return logs, translate("list mood logs", err)
}

func (r *moodLogPgRepository) GetInRange(ctx context.Context, userID string, rg DateRange) ([]entities.MoodLog, error) {
	var logs []entities.MoodLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, rg.From, rg.To).
		Order("date DESC").
		Find(&logs).Error
	return logs, translate("list mood logs in range", err)
}

func (r *moodLogPgRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).Delete(&entities.MoodLog{})
	if res.Error != nil {
		return translate("delete mood log", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete mood log", ErrNotFound)
	}
	return nil
}
