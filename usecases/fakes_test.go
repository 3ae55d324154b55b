package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"habit-tracker/entities"
	"habit-tracker/repositories"

	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the Postgres repositories. Upserts hold
// the lock across lookup and write, mirroring the single-statement upsert.
type memStore struct {
	mu        sync.Mutex
	users     map[string]entities.User
	habits    map[string]entities.Habit
	habitLogs map[string]entities.HabitLog
	moodLogs  map[string]entities.MoodLog
	settings  map[string]entities.UserSettings
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]entities.User{},
		habits:    map[string]entities.Habit{},
		habitLogs: map[string]entities.HabitLog{},
		moodLogs:  map[string]entities.MoodLog{},
		settings:  map[string]entities.UserSettings{},
	}
}

// stamp gives strictly increasing creation times so ordering is stable.
func (s *memStore) stamp() string {
	s.seq++
	return time.Date(2026, 1, 1, 0, 0, s.seq, 0, time.UTC).Format(time.RFC3339)
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", repositories.ErrDuplicate)
		}
	}
	user.ID = uuid.New().String()
	user.CreatedAt = r.stamp()
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", repositories.ErrNotFound)
}

type memHabits struct{ *memStore }

func (r memHabits) Create(_ context.Context, habit *entities.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	habit.ID = uuid.New().String()
	habit.CreatedAt = r.stamp()
	r.habits[habit.ID] = *habit
	return nil
}

func (r memHabits) GetByID(_ context.Context, userID, id string) (*entities.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return nil, fmt.Errorf("get habit: %w", repositories.ErrNotFound)
	}
	return &h, nil
}

func (r memHabits) GetByUserID(_ context.Context, userID string) ([]entities.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Habit
	for _, h := range r.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (r memHabits) Update(_ context.Context, userID, id, name, color string) (*entities.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return nil, fmt.Errorf("update habit: %w", repositories.ErrNotFound)
	}
	h.Name, h.Color = name, color
	r.habits[id] = h
	return &h, nil
}

func (r memHabits) DeleteWithLogs(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[id]
	if !ok || h.UserID != userID {
		return fmt.Errorf("delete habit: %w", repositories.ErrNotFound)
	}
	delete(r.habits, id)
	for k, l := range r.habitLogs {
		if l.HabitID == id && l.UserID == userID {
			delete(r.habitLogs, k)
		}
	}
	return nil
}

type memHabitLogs struct{ *memStore }

func (r memHabitLogs) Upsert(_ context.Context, log *entities.HabitLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// foreign key on habit_id
	if _, ok := r.habits[log.HabitID]; !ok {
		return fmt.Errorf("upsert habit log: %w", repositories.ErrNotFound)
	}
	for k, existing := range r.habitLogs {
		if existing.UserID == log.UserID && existing.HabitID == log.HabitID && existing.Date == log.Date {
			existing.Completed = log.Completed
			r.habitLogs[k] = existing
			*log = existing
			return nil
		}
	}
	log.ID = uuid.New().String()
	log.CreatedAt = r.stamp()
	r.habitLogs[log.ID] = *log
	return nil
}

func (r memHabitLogs) filter(keep func(entities.HabitLog) bool) []entities.HabitLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.HabitLog
	for _, l := range r.habitLogs {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (r memHabitLogs) GetByUserID(_ context.Context, userID string) ([]entities.HabitLog, error) {
	return r.filter(func(l entities.HabitLog) bool { return l.UserID == userID }), nil
}

func (r memHabitLogs) GetByHabitID(_ context.Context, userID, habitID string) ([]entities.HabitLog, error) {
	return r.filter(func(l entities.HabitLog) bool { return l.UserID == userID && l.HabitID == habitID }), nil
}

func (r memHabitLogs) GetInRange(_ context.Context, userID string, rg repositories.DateRange) ([]entities.HabitLog, error) {
	return r.filter(func(l entities.HabitLog) bool {
		return l.UserID == userID && l.Date >= rg.From && l.Date <= rg.To
	}), nil
}

func (r memHabitLogs) DeleteByDate(_ context.Context, userID, habitID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, l := range r.habitLogs {
		if l.UserID == userID && l.HabitID == habitID && l.Date == date {
			delete(r.habitLogs, k)
			return nil
		}
	}
	return fmt.Errorf("delete habit log: %w", repositories.ErrNotFound)
}

type memMoodLogs struct{ *memStore }

func (r memMoodLogs) Upsert(_ context.Context, log *entities.MoodLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, existing := range r.moodLogs {
		if existing.UserID == log.UserID && existing.Date == log.Date {
			existing.MoodLevel, existing.Emoji, existing.Note = log.MoodLevel, log.Emoji, log.Note
			r.moodLogs[k] = existing
			*log = existing
			return nil
		}
	}
	log.ID = uuid.New().String()
	log.CreatedAt = r.stamp()
	r.moodLogs[log.ID] = *log
	return nil
}

func (r memMoodLogs) filter(keep func(entities.MoodLog) bool) []entities.MoodLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.MoodLog
	for _, l := range r.moodLogs {
		if keep(l) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

func (r memMoodLogs) GetByUserID(_ context.Context, userID string) ([]entities.MoodLog, error) {
	return r.filter(func(l entities.MoodLog) bool { return l.UserID == userID }), nil
}

func (r memMoodLogs) GetInRange(_ context.Context, userID string, rg repositories.DateRange) ([]entities.MoodLog, error) {
	return r.filter(func(l entities.MoodLog) bool {
		return l.UserID == userID && l.Date >= rg.From && l.Date <= rg.To
	}), nil
}

func (r memMoodLogs) DeleteByDate(_ context.Context, userID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, l := range r.moodLogs {
		if l.UserID == userID && l.Date == date {
			delete(r.moodLogs, k)
			return nil
		}
	}
	return fmt.Errorf("delete mood log: %w", repositories.ErrNotFound)
}

type memSettings struct{ *memStore }

func (r memSettings) GetOrCreate(_ context.Context, userID string) (*entities.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		s = *entities.DefaultSettings(userID)
		r.settings[userID] = s
	}
	return &s, nil
}

func (r memSettings) Update(_ context.Context, userID string, fields map[string]interface{}) (*entities.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return nil, fmt.Errorf("update settings: %w", repositories.ErrNotFound)
	}
	if v, ok := fields["theme"].(string); ok {
		s.Theme = v
	}
	if v, ok := fields["color_palette"].(string); ok {
		s.ColorPalette = v
	}
	r.settings[userID] = s
	return &s, nil
}
