package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"habit-tracker/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu        sync.Mutex
	text      string
	err       error
	block     bool
	calls     int
	sessionID string
	system    string
	prompt    string
}

func (g *stubGenerator) Complete(ctx context.Context, system, sessionID, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.system, g.sessionID, g.prompt = system, sessionID, prompt
	block, text, err := g.block, g.text, g.err
	g.mu.Unlock()

	if block {
		// ignores ctx on purpose
		time.Sleep(5 * time.Second)
	}
	return text, err
}

func TestSummarize_Scenario(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	habit, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	today := fixedNow.Format(DateLayout)

	_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: habit.ID, Date: today, Completed: boolPtr(true)})
	require.NoError(t, err)

	summary, err := app.analytics.Summarize(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalHabits)
	assert.Equal(t, 1, summary.TotalCompletions)
	assert.Equal(t, 100.0, summary.HabitStats[habit.ID].CompletionRate)
	assert.Equal(t, "Read", summary.HabitStats[habit.ID].Name)

	_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: habit.ID, Date: today, Completed: boolPtr(false)})
	require.NoError(t, err)

	logs, err := app.logs.ListHabitLogs(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Completed)

	summary, err = app.analytics.Summarize(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalCompletions)
	assert.Equal(t, 0.0, summary.HabitStats[habit.ID].CompletionRate)
}

func TestSummarize_NoMoodEntries(t *testing.T) {
	app := newTestApp(t)
	userID := app.register(t, "a@x.com")

	summary, err := app.analytics.Summarize(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.AvgMood)
	assert.NotNil(t, summary.MoodTrend)
	assert.Empty(t, summary.MoodTrend)
	assert.Empty(t, summary.HabitStats)
}

func TestSummarize_RatesAndWindow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	read, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	idle, err := app.habits.Create(ctx, userID, HabitInput{Name: "Idle", Color: "#999"})
	require.NoError(t, err)

	day := func(offset int) string { return fixedNow.AddDate(0, 0, -offset).Format(DateLayout) }

	// window is today and the 29 days before it
	for offset, done := range map[int]bool{0: true, 1: true, 2: false, 29: true, 30: true, 45: true} {
		_, err := app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: read.ID, Date: day(offset), Completed: boolPtr(done)})
		require.NoError(t, err)
	}
	_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: read.ID, Date: fixedNow.AddDate(0, 0, 1).Format(DateLayout), Completed: boolPtr(true)})
	require.NoError(t, err)

	for offset, level := range map[int]int{0: 4, 1: 5, 3: 3, 31: 1} {
		_, err := app.logs.LogMood(ctx, userID, MoodLogInput{Date: day(offset), MoodLevel: level, Emoji: "🙂"})
		require.NoError(t, err)
	}

	summary, err := app.analytics.Summarize(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalHabits)
	assert.Equal(t, 3, summary.TotalCompletions)
	assert.Equal(t, 75.0, summary.HabitStats[read.ID].CompletionRate)
	assert.Equal(t, 3, summary.HabitStats[read.ID].TotalCompletions)
	assert.Equal(t, 0.0, summary.HabitStats[idle.ID].CompletionRate)
	assert.Equal(t, 4.0, summary.AvgMood)
	assert.Len(t, summary.MoodTrend, 3)
}

func TestSummarize_RoundsToOneDecimal(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	habit, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)

	for i, done := range []bool{true, false, false} {
		_, err := app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: habit.ID, Date: fixedNow.AddDate(0, 0, -i).Format(DateLayout), Completed: boolPtr(done)})
		require.NoError(t, err)
	}
	for i, level := range []int{4, 4, 5} {
		_, err := app.logs.LogMood(ctx, userID, MoodLogInput{Date: fixedNow.AddDate(0, 0, -i).Format(DateLayout), MoodLevel: level, Emoji: "🙂"})
		require.NoError(t, err)
	}

	summary, err := app.analytics.Summarize(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 33.3, summary.HabitStats[habit.ID].CompletionRate)
	assert.Equal(t, 4.3, summary.AvgMood)
}

func TestBuildInsightPrompt_InsufficientData(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")

	_, err := app.analytics.BuildInsightPrompt(ctx, userID)
	assert.ErrorIs(t, err, ErrInsufficientData)

	// habits but no mood entries
	_, err = app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	_, err = app.analytics.BuildInsightPrompt(ctx, userID)
	assert.ErrorIs(t, err, ErrInsufficientData)

	text, err := app.analytics.RequestInsight(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, InsufficientDataMessage, text)
	assert.Zero(t, app.gen.calls)
}

func seedHistory(t *testing.T, app *testApp, userID string, days int) {
	t.Helper()
	ctx := context.Background()
	read, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	run, err := app.habits.Create(ctx, userID, HabitInput{Name: "Run", Color: "#222"})
	require.NoError(t, err)

	for i := 0; i < days; i++ {
		date := fixedNow.AddDate(0, 0, -i).Format(DateLayout)
		_, err := app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: read.ID, Date: date, Completed: boolPtr(true)})
		require.NoError(t, err)
		_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: run.ID, Date: date, Completed: boolPtr(i%2 == 0)})
		require.NoError(t, err)
		_, err = app.logs.LogMood(ctx, userID, MoodLogInput{Date: date, MoodLevel: 1 + i%5, Emoji: "🙂"})
		require.NoError(t, err)
	}
}

func TestBuildInsightPrompt_Content(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	seedHistory(t, app, userID, 12)

	prompt, err := app.analytics.BuildInsightPrompt(ctx, userID)
	require.NoError(t, err)

	assert.Contains(t, prompt, "User's Habits: Read, Run\n")
	assert.Contains(t, prompt, "- Total mood entries: 12\n")
	assert.Contains(t, prompt, "- Average mood level: 2.8/5\n")
	assert.Contains(t, prompt, "- Total habit completions: 18\n")
	assert.Contains(t, prompt, "- 2026-10-19: Mood 1/5, Completed: Read, Run\n")
	assert.Contains(t, prompt, "- 2026-10-18: Mood 2/5, Completed: Read\n")
	assert.Contains(t, prompt, "- 2026-10-10: Mood 5/5, Completed: Read\n")
	assert.NotContains(t, prompt, "2026-10-09")
	assert.Contains(t, prompt, "under 200 words")

	// most recent first, capped at ten lines
	assert.Equal(t, 10, strings.Count(prompt, ": Mood "))
	assert.Less(t, strings.Index(prompt, "2026-10-19"), strings.Index(prompt, "2026-10-18"))

	again, err := app.analytics.BuildInsightPrompt(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, prompt, again)
}

func TestBuildInsightPrompt_NoCorrelations(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	habit, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: habit.ID, Date: "2026-10-19", Completed: boolPtr(false)})
	require.NoError(t, err)
	_, err = app.logs.LogMood(ctx, userID, MoodLogInput{Date: "2026-10-19", MoodLevel: 3, Emoji: "😐"})
	require.NoError(t, err)

	prompt, err := app.analytics.BuildInsightPrompt(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, prompt, "No habit completions found in recent mood entries.")
}

func TestRequestInsight_Success(t *testing.T) {
	app := newTestApp(t)
	userID := app.register(t, "a@x.com")
	seedHistory(t, app, userID, 3)

	text, err := app.analytics.RequestInsight(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, "Reading days line up with your best moods.", text)
	assert.Equal(t, "insights_"+userID, app.gen.sessionID)
	assert.Equal(t, InsightSystemPrompt, app.gen.system)
	assert.Contains(t, app.gen.prompt, "User's Habits: Read, Run")
}

func TestRequestInsight_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
	}{
		{"upstream error", "", errors.New("503 service unavailable")},
		{"empty output", "   ", nil},
		{"quota", "", fmt.Errorf("quota: %w", context.DeadlineExceeded)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			userID := app.register(t, "a@x.com")
			seedHistory(t, app, userID, 2)
			app.gen.text, app.gen.err = tt.text, tt.err

			text, err := app.analytics.RequestInsight(context.Background(), userID)
			require.NoError(t, err)
			assert.Equal(t, InsightFallbackMessage, text)
		})
	}
}

func TestRequestInsight_TimeBounded(t *testing.T) {
	app := newTestApp(t)
	userID := app.register(t, "a@x.com")
	seedHistory(t, app, userID, 2)
	app.gen.block = true
	app.analytics.timeout = 50 * time.Millisecond

	start := time.Now()
	text, err := app.analytics.RequestInsight(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, InsightFallbackMessage, text)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestBuildInsightPrompt_CompletionForMissingHabitIsUnknown(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	userID := app.register(t, "a@x.com")
	read, err := app.habits.Create(ctx, userID, HabitInput{Name: "Read", Color: "#111"})
	require.NoError(t, err)
	_, err = app.logs.LogHabit(ctx, userID, HabitLogInput{HabitID: read.ID, Date: "2026-10-19", Completed: boolPtr(true)})
	require.NoError(t, err)
	_, err = app.logs.LogMood(ctx, userID, MoodLogInput{Date: "2026-10-19", MoodLevel: 4, Emoji: "🙂"})
	require.NoError(t, err)

	// a log whose habit row is not in the habit list
	app.store.habitLogs["orphan"] = entities.HabitLog{ID: "orphan", UserID: userID, HabitID: "gone", Date: "2026-10-19", Completed: true}

	prompt, err := app.analytics.BuildInsightPrompt(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, prompt, "- 2026-10-19: Mood 4/5, Completed: Read, Unknown\n")
	assert.Contains(t, prompt, "- Total habit completions: 2\n")
}
