package repositories

import (
	"context"

	"habit-tracker/db"
	"habit-tracker/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type habitPgRepository struct {
	db db.Database
}

func NewHabitPgRepository(database db.Database) HabitRepository {
	return &habitPgRepository{db: database}
}

func (r *habitPgRepository) Create(ctx context.Context, habit *entities.Habit) error {
	return translate("create habit", r.db.WithContext(ctx).Create(habit).Error)
}

func (r *habitPgRepository) GetByID(ctx context.Context, userID, id string) (*entities.Habit, error) {
	var habit entities.Habit
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&habit).Error
	if err != nil {
		return nil, translate("get habit", err)
	}
	return &habit, nil
}

func (r *habitPgRepository) GetByUserID(ctx context.Context, userID string) ([]entities.Habit, error) {
	var habits []entities.Habit
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&habits).Error
	return habits, translate("list habits", err)
}

// Update renames/recolors a habit in a single UPDATE ... RETURNING scoped to the owner.
func (r *habitPgRepository) Update(ctx context.Context, userID, id, name, color string) (*entities.Habit, error) {
	var habit entities.Habit
	res := r.db.WithContext(ctx).
		Model(&habit).
		Clauses(clause.Returning{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"name": name, "color": color})
	if res.Error != nil {
		return nil, translate("update habit", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, translate("update habit", ErrNotFound)
	}
	return &habit, nil
}

// DeleteWithLogs removes the habit and every log that references it in one transaction.
func (r *habitPgRepository) DeleteWithLogs(ctx context.Context, userID, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Habit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("habit_id = ? AND user_id = ?", id, userID).Delete(&entities.HabitLog{}).Error
	})
	return translate("delete habit", err)
}
