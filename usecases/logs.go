package usecases

import (
	"context"
	"strings"

	"habit-tracker/entities"
	"habit-tracker/metrics"
	"habit-tracker/repositories"
)

// DateLayout is the calendar-date format used for every log date.
const DateLayout = "2006-01-02"

type HabitLogInput struct {
	HabitID   string `json:"habit_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Completed *bool  `json:"completed" validate:"required"`
}

type MoodLogInput struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	MoodLevel int    `json:"mood_level" validate:"required,min=1,max=5"`
	Emoji     string `json:"emoji" validate:"required,max=32"`
	Note      string `json:"note" validate:"max=2000"`
}

// LogUseCase records per-day habit completions and mood entries. Both kinds
// are keyed by calendar date: writing the same key twice updates the first record.
type LogUseCase struct {
	habits    repositories.HabitRepository
	habitLogs repositories.HabitLogRepository
	moodLogs  repositories.MoodLogRepository
}

func NewLogUseCase(habits repositories.HabitRepository, habitLogs repositories.HabitLogRepository, moodLogs repositories.MoodLogRepository) *LogUseCase {
	return &LogUseCase{habits: habits, habitLogs: habitLogs, moodLogs: moodLogs}
}

func (uc *LogUseCase) ListHabitLogs(ctx context.Context, userID string) ([]entities.HabitLog, error) {
	logs, err := uc.habitLogs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entities.HabitLog{}
	}
	return logs, nil
}

// LogHabit sets the completion flag for (habit, date), creating the log on first write.
func (uc *LogUseCase) LogHabit(ctx context.Context, userID string, in HabitLogInput) (*entities.HabitLog, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if _, err := uc.habits.GetByID(ctx, userID, in.HabitID); err != nil {
		return nil, mapNotFound(err, "Habit not found")
	}

	log := &entities.HabitLog{
		UserID:    userID,
		HabitID:   in.HabitID,
		Date:      in.Date,
		Completed: *in.Completed,
	}
	// the habit can disappear between the ownership check and the write
	if err := uc.habitLogs.Upsert(ctx, log); err != nil {
		return nil, mapNotFound(err, "Habit not found")
	}
	metrics.LogUpsertsTotal.WithLabelValues("habit").Inc()
	return log, nil
}

func (uc *LogUseCase) DeleteHabitLog(ctx context.Context, userID, habitID, date string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if err := uc.habitLogs.DeleteByDate(ctx, userID, habitID, date); err != nil {
		return mapNotFound(err, "Habit log not found")
	}
	return nil
}

func (uc *LogUseCase) ListMoodLogs(ctx context.Context, userID string) ([]entities.MoodLog, error) {
	logs, err := uc.moodLogs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []entities.MoodLog{}
	}
	return logs, nil
}

// LogMood records the mood for a date, replacing level, emoji and note of an existing entry.
func (uc *LogUseCase) LogMood(ctx context.Context, userID string, in MoodLogInput) (*entities.MoodLog, error) {
	in.Note = strings.TrimSpace(in.Note)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	log := &entities.MoodLog{
		UserID:    userID,
		Date:      in.Date,
		MoodLevel: in.MoodLevel,
		Emoji:     in.Emoji,
		Note:      in.Note,
	}
	if err := uc.moodLogs.Upsert(ctx, log); err != nil {
		return nil, err
	}
	metrics.LogUpsertsTotal.WithLabelValues("mood").Inc()
	return log, nil
}

func (uc *LogUseCase) DeleteMoodLog(ctx context.Context, userID, date string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	if err := uc.moodLogs.DeleteByDate(ctx, userID, date); err != nil {
		return mapNotFound(err, "Mood log not found")
	}
	return nil
}

func validateDate(date string) error {
	return validateInput(struct {
		Date string `validate:"required,datetime=2006-01-02"`
	}{Date: date})
}
