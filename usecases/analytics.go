package usecases

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"habit-tracker/entities"
	"habit-tracker/insight"
	"habit-tracker/metrics"
	"habit-tracker/repositories"

	"github.com/rs/zerolog/log"
)

const (
	// WindowDays is the length of the analytics window, today included.
	WindowDays = 30
	// maxCorrelationSamples caps the dated lines in the insight prompt.
	maxCorrelationSamples = 10
	unknownHabitName      = "Unknown"

	InsightSystemPrompt     = "You are a supportive wellness coach providing personalized habit insights."
	InsufficientDataMessage = "Not enough data yet. Start tracking your habits and mood to get AI insights!"
	InsightFallbackMessage  = "Unable to generate AI insights at this time. Please try again later."
)

// ErrInsufficientData is returned by BuildInsightPrompt when the user has no
// habits or no mood entries in the window.
var ErrInsufficientData = errors.New("insufficient data for insights")

type HabitStat struct {
	Name             string  `json:"name"`
	CompletionRate   float64 `json:"completion_rate"`
	TotalCompletions int     `json:"total_completions"`
}

type Summary struct {
	TotalHabits      int                  `json:"total_habits"`
	TotalCompletions int                  `json:"total_completions"`
	AvgMood          float64              `json:"avg_mood"`
	HabitStats       map[string]HabitStat `json:"habit_stats"`
	MoodTrend        []entities.MoodLog   `json:"mood_trend"`
}

type AnalyticsUseCase struct {
	habits    repositories.HabitRepository
	habitLogs repositories.HabitLogRepository
	moodLogs  repositories.MoodLogRepository
	generator insight.Generator
	timeout   time.Duration
	now       func() time.Time
}

func NewAnalyticsUseCase(
	habits repositories.HabitRepository,
	habitLogs repositories.HabitLogRepository,
	moodLogs repositories.MoodLogRepository,
	generator insight.Generator,
	timeout time.Duration,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		habits:    habits,
		habitLogs: habitLogs,
		moodLogs:  moodLogs,
		generator: generator,
		timeout:   timeout,
		now:       time.Now,
	}
}

type windowData struct {
	habits    []entities.Habit
	habitLogs []entities.HabitLog
	moodLogs  []entities.MoodLog
}

// window returns [today-29d, today] by UTC calendar date.
func (uc *AnalyticsUseCase) window() repositories.DateRange {
	today := uc.now().UTC()
	return repositories.DateRange{
		From: today.AddDate(0, 0, -(WindowDays - 1)).Format(DateLayout),
		To:   today.Format(DateLayout),
	}
}

func (uc *AnalyticsUseCase) load(ctx context.Context, userID string) (*windowData, error) {
	rg := uc.window()

	habits, err := uc.habits.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	habitLogs, err := uc.habitLogs.GetInRange(ctx, userID, rg)
	if err != nil {
		return nil, err
	}
	moodLogs, err := uc.moodLogs.GetInRange(ctx, userID, rg)
	if err != nil {
		return nil, err
	}
	return &windowData{habits: habits, habitLogs: habitLogs, moodLogs: moodLogs}, nil
}

// Summarize computes totals, average mood and per-habit completion rates over the window.
func (uc *AnalyticsUseCase) Summarize(ctx context.Context, userID string) (*Summary, error) {
	data, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]int)
	total := make(map[string]int)
	totalCompletions := 0
	for _, l := range data.habitLogs {
		total[l.HabitID]++
		if l.Completed {
			completed[l.HabitID]++
			totalCompletions++
		}
	}

	stats := make(map[string]HabitStat, len(data.habits))
	for _, h := range data.habits {
		rate := 0.0
		if n := total[h.ID]; n > 0 {
			rate = float64(completed[h.ID]) / float64(n) * 100
		}
		stats[h.ID] = HabitStat{
			Name:             h.Name,
			CompletionRate:   round1(rate),
			TotalCompletions: completed[h.ID],
		}
	}

	trend := data.moodLogs
	if trend == nil {
		trend = []entities.MoodLog{}
	}

	return &Summary{
		TotalHabits:      len(data.habits),
		TotalCompletions: totalCompletions,
		AvgMood:          round1(averageMood(data.moodLogs)),
		HabitStats:       stats,
		MoodTrend:        trend,
	}, nil
}

// BuildInsightPrompt renders the coaching prompt for the user's window. The
// text depends only on the stored data, so equal inputs give equal prompts.
func (uc *AnalyticsUseCase) BuildInsightPrompt(ctx context.Context, userID string) (string, error) {
	data, err := uc.load(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(data.habits) == 0 || len(data.moodLogs) == 0 {
		return "", ErrInsufficientData
	}
	return renderPrompt(data), nil
}

func renderPrompt(data *windowData) string {
	names := make([]string, 0, len(data.habits))
	for _, h := range data.habits {
		names = append(names, h.Name)
	}

	totalCompletions := 0
	completedOn := make(map[string]map[string]bool)
	for _, l := range data.habitLogs {
		if !l.Completed {
			continue
		}
		totalCompletions++
		if completedOn[l.Date] == nil {
			completedOn[l.Date] = make(map[string]bool)
		}
		completedOn[l.Date][l.HabitID] = true
	}

	moodByDate := make(map[string]int, len(data.moodLogs))
	dates := make([]string, 0, len(data.moodLogs))
	for _, m := range data.moodLogs {
		if _, seen := moodByDate[m.Date]; !seen {
			dates = append(dates, m.Date)
		}
		moodByDate[m.Date] = m.MoodLevel
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var b strings.Builder
	b.WriteString("You are a wellness coach analyzing a user's habit and mood data.\n\n")
	fmt.Fprintf(&b, "User's Habits: %s\n\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Last %d days data:\n", WindowDays)
	fmt.Fprintf(&b, "- Total mood entries: %d\n", len(data.moodLogs))
	fmt.Fprintf(&b, "- Average mood level: %.1f/5\n", averageMood(data.moodLogs))
	fmt.Fprintf(&b, "- Total habit completions: %d\n\n", totalCompletions)
	b.WriteString("Correlation data (sample):\n")

	samples := 0
	for _, date := range dates {
		if samples == maxCorrelationSamples {
			break
		}
		done := completedOn[date]
		if len(done) == 0 {
			continue
		}
		fmt.Fprintf(&b, "- %s: Mood %d/5, Completed: %s\n", date, moodByDate[date], strings.Join(completedNames(data.habits, done), ", "))
		samples++
	}
	if samples == 0 {
		b.WriteString("No habit completions found in recent mood entries.\n")
	}

	b.WriteString("\nProvide 3-4 brief, actionable insights about:\n")
	b.WriteString("1. Which habits seem to correlate with better mood\n")
	b.WriteString("2. Consistency patterns\n")
	b.WriteString("3. Recommendations for improvement\n\n")
	b.WriteString("Keep it warm, encouraging, and under 200 words.")
	return b.String()
}

// completedNames lists done habits in habit order. Ids missing from habits
// (deleted since the log was read) are rendered as unknownHabitName.
func completedNames(habits []entities.Habit, done map[string]bool) []string {
	known := make(map[string]bool, len(habits))
	names := make([]string, 0, len(done))
	for _, h := range habits {
		known[h.ID] = true
		if done[h.ID] {
			names = append(names, h.Name)
		}
	}
	unknown := 0
	for id := range done {
		if !known[id] {
			unknown++
		}
	}
	for i := 0; i < unknown; i++ {
		names = append(names, unknownHabitName)
	}
	return names
}

// RequestInsight asks the generator for coaching text. Generator failures and
// timeouts are logged and replaced by InsightFallbackMessage; only store errors
// are returned.
func (uc *AnalyticsUseCase) RequestInsight(ctx context.Context, userID string) (string, error) {
	prompt, err := uc.BuildInsightPrompt(ctx, userID)
	if errors.Is(err, ErrInsufficientData) {
		metrics.InsightRequestsTotal.WithLabelValues("insufficient_data").Inc()
		return InsufficientDataMessage, nil
	}
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := uc.complete(ctx, SessionID(userID), prompt)
	metrics.InsightDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("fallback").Inc()
		log.Error().
			Err(fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)).
			Str("user_id", userID).
			Msg("insight generation failed, serving fallback")
		return InsightFallbackMessage, nil
	}

	metrics.InsightRequestsTotal.WithLabelValues("ok").Inc()
	return text, nil
}

// complete bounds the generator call by uc.timeout even if the generator ignores ctx.
func (uc *AnalyticsUseCase) complete(ctx context.Context, sessionID, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		text, err := uc.generator.Complete(ctx, InsightSystemPrompt, sessionID, prompt)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if strings.TrimSpace(r.text) == "" {
			return "", errors.New("generator returned empty text")
		}
		return strings.TrimSpace(r.text), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// SessionID scopes generator conversations to a user.
func SessionID(userID string) string {
	return "insights_" + userID
}

func averageMood(logs []entities.MoodLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	sum := 0
	for _, m := range logs {
		sum += m.MoodLevel
	}
	return float64(sum) / float64(len(logs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
