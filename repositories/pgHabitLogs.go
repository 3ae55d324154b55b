package repositories

import (
	"context"

	"habit-tracker/db"
	"habit-tracker/entities"

	"gorm.io/gorm/clause"
)

type habitLogPgRepository struct {
	db db.Database
}

func NewHabitLogPgRepository(database db.Database) HabitLogRepository {
	return &habitLogPgRepository{db: database}
}

func (r *habitLogPgRepository) Upsert(ctx context.Context, log *entities.HabitLog) error {
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "habit_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"completed"}),
			},
			clause.Returning{},
		).
		Create(log).Error
	return translate("upsert habit log", err)
}

func (r *habitLogPgRepository) GetByUserID(ctx context.Context, userID string) ([]entities.HabitLog, error) {
	var logs []entities.HabitLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&logs).Error
	return logs, translate("list habit logs", err)
}

func (r *habitLogPgRepository) GetByHabitID(ctx context.Context, userID, habitID string) ([]entities.HabitLog, error) {
	var logs []entities.HabitLog
	err := r.db.WithContext(ctx).Where("user_id = ? AND habit_id = ?", userID, habitID).Order("date DESC").Find(&logs).Error
	return logs, translate("list habit logs by habit", err)
}

func (r *habitLogPgRepository) GetInRange(ctx context.Context, userID string, rg DateRange) ([]entities.HabitLog, error) {
	var logs []entities.HabitLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, rg.From, rg.To).
		Order("date DESC").
		Find(&logs).Error
	return logs, translate("list habit logs in range", err)
}

func (r *habitLogPgRepository) DeleteByDate(ctx context.Context, userID, habitID, date string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND habit_id = ? AND date = ?", userID, habitID, date).
		Delete(&entities.HabitLog{})
	if res.Error != nil {
		return translate("delete habit log", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("delete habit log", ErrNotFound)
	}
	return nil
}
