package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/pkg/supabase"
)

const entryConflictTarget = "user_id,entry_date"

type moodEntryRow struct {
	EntryDate string `json:"entry_date"`
	MoodValue int    `json:"mood_value"`
	MoodLabel string `json:"mood_label"`
	QuickNote string `json:"quick_note"`
}

type activityRow struct {
	EntryDate         string   `json:"entry_date"`
	SleepHours        *float64 `json:"sleep_hours"`
	ExerciseMinutes   *int     `json:"exercise_minutes"`
	SocialInteraction *bool    `json:"social_interaction"`
	WorkStressLevel   *int     `json:"work_stress_level"`
}

type moodEntryRepository struct {
	client *supabase.Client
}

// NewMoodEntryRepository creates a Supabase-backed mood entry repository
func NewMoodEntryRepository(client *supabase.Client) MoodEntryRepository {
	return &moodEntryRepository{client: client}
}

// moodEntryPayload always carries both sentiment keys so a save without a note
// clears an earlier score. entry_time is only sent on insert-if-absent: a
// merge-duplicates upsert would overwrite it, and the first save of a day keeps
// its time. New rows from Upsert take the column default.
func moodEntryPayload(entry *models.MoodEntry) map[string]interface{} {
	return map[string]interface{}{
		"user_id":         entry.UserID,
		"entry_date":      entry.EntryDate.Format(models.DateLayout),
		"mood_value":      entry.MoodValue,
		"mood_label":      entry.MoodLabel,
		"quick_note":      entry.QuickNote,
		"sentiment_score": entry.SentimentScore,
		"sentiment_label": entry.SentimentLabel,
		"updated_at":      time.Now().UTC(),
	}
}

func (r *moodEntryRepository) Upsert(ctx context.Context, entry *models.MoodEntry) error {
	if _, err := r.client.Upsert(ctx, "mood_entries", moodEntryPayload(entry), entryConflictTarget); err != nil {
		return fmt.Errorf("failed to upsert mood entry: %w", err)
	}
	return nil
}

func (r *moodEntryRepository) CreateIfAbsent(ctx context.Context, entry *models.MoodEntry) error {
	data := moodEntryPayload(entry)
	if entry.EntryTime != "" {
		data["entry_time"] = entry.EntryTime
	}
	if _, err := r.client.InsertIgnore(ctx, "mood_entries", data, entryConflictTarget); err != nil {
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return nil
}

// ListJournal reads entries and activities separately and joins them here;
// PostgREST embedding would need a composite foreign key in the schema cache.
func (r *moodEntryRepository) ListJournal(ctx context.Context, userID string, since time.Time) ([]models.JournalEntry, error) {
	sinceStr := since.Format(models.DateLayout)

	body, err := r.client.Query(ctx, "mood_entries", map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"entry_date": fmt.Sprintf("gte.%s", sinceStr),
		"select":     "entry_date,mood_value,mood_label,quick_note",
		"order":      "entry_date.desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var entries []moodEntryRow
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return []models.JournalEntry{}, nil
	}

	body, err = r.client.Query(ctx, "activities", map[string]interface{}{
		"user_id":    fmt.Sprintf("eq.%s", userID),
		"entry_date": fmt.Sprintf("gte.%s", sinceStr),
		"select":     "entry_date,sleep_hours,exercise_minutes,social_interaction,work_stress_level",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}

	var activities []activityRow
	if err := json.Unmarshal(body, &activities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	byDate := make(map[string]activityRow, len(activities))
	for _, a := range activities {
		byDate[a.EntryDate] = a
	}

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(models.DateLayout, e.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_date %q: %w", e.EntryDate, err)
		}
		je := models.JournalEntry{
			MoodValue: e.MoodValue,
			MoodLabel: e.MoodLabel,
			QuickNote: e.QuickNote,
		}
		je.SetDate(date)
		if a, ok := byDate[e.EntryDate]; ok {
			je.SleepHours = a.SleepHours
			je.ExerciseMinutes = a.ExerciseMinutes
			je.SocialInteraction = a.SocialInteraction
			je.WorkStressLevel = a.WorkStressLevel
		}
		out = append(out, je)
	}
	return out, nil
}

func (r *moodEntryRepository) ListCheckInDates(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	body, err := r.client.Query(ctx, "mood_entries", map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "entry_date",
		"order":   "entry_date.desc",
		"limit":   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in dates: %w", err)
	}

	var rows []struct {
		EntryDate string `json:"entry_date"`
	}
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		d, err := time.Parse(models.DateLayout, row.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid entry_date %q: %w", row.EntryDate, err)
		}
		dates = append(dates, d)
	}
	return dates, nil
}

type activityRepository struct {
	client *supabase.Client
}

// NewActivityRepository creates a Supabase-backed activity repository
func NewActivityRepository(client *supabase.Client) ActivityRepository {
	return &activityRepository{client: client}
}

func activityPayload(a *models.Activity) map[string]interface{} {
	return map[string]interface{}{
		"user_id":            a.UserID,
		"entry_date":         a.EntryDate.Format(models.DateLayout),
		"sleep_hours":        a.SleepHours,
		"exercise_minutes":   a.ExerciseMinutes,
		"social_interaction": a.SocialInteraction,
		"caffeine_intake":    a.CaffeineIntake,
		"work_stress_level":  a.WorkStressLevel,
	}
}

func (r *activityRepository) Upsert(ctx context.Context, a *models.Activity) error {
	if _, err := r.client.Upsert(ctx, "activities", activityPayload(a), entryConflictTarget); err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

func (r *activityRepository) CreateIfAbsent(ctx context.Context, a *models.Activity) error {
	if _, err := r.client.InsertIgnore(ctx, "activities", activityPayload(a), entryConflictTarget); err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}
