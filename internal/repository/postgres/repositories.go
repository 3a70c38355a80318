package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonnyWalker81/vibecheck/backend/internal/analysis"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, email, password_hash, first_name, age_range, wellness_goals, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.AgeRange, &u.WellnessGoals, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	goals := user.WellnessGoals
	if goals == nil {
		goals = []string{}
	}

	created, err := scanUser(r.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, email, password_hash, first_name, age_range, wellness_goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.PasswordHash, user.FirstName, user.AgeRange, goals,
	))
	if isUniqueViolation(err) {
		return nil, repository.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

type moodEntryRepository struct {
	pool *pgxpool.Pool
}

func (r *moodEntryRepository) Upsert(ctx context.Context, e *models.MoodEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mood_entries (user_id, entry_date, entry_time, mood_value, mood_label, quick_note, sentiment_score, sentiment_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, entry_date) DO UPDATE
		SET mood_value = EXCLUDED.mood_value,
		    mood_label = EXCLUDED.mood_label,
		    quick_note = EXCLUDED.quick_note,
		    sentiment_score = EXCLUDED.sentiment_score,
		    sentiment_label = EXCLUDED.sentiment_label,
		    updated_at = NOW()
	`, e.UserID, e.EntryDate, e.EntryTime, e.MoodValue, e.MoodLabel, e.QuickNote, e.SentimentScore, e.SentimentLabel)
	if err != nil {
		return fmt.Errorf("failed to upsert mood entry: %w", err)
	}
	return nil
}

func (r *moodEntryRepository) CreateIfAbsent(ctx context.Context, e *models.MoodEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO mood_entries (user_id, entry_date, entry_time, mood_value, mood_label, quick_note, sentiment_score, sentiment_label)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, entry_date) DO NOTHING
	`, e.UserID, e.EntryDate, e.EntryTime, e.MoodValue, e.MoodLabel, e.QuickNote, e.SentimentScore, e.SentimentLabel)
	if err != nil {
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}
	return nil
}

func (r *moodEntryRepository) ListJournal(ctx context.Context, userID string, since time.Time) ([]models.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.entry_date, m.mood_value, m.mood_label, m.quick_note,
		       a.sleep_hours::float8, a.exercise_minutes, a.social_interaction, a.work_stress_level
		FROM mood_entries m
		LEFT JOIN activities a ON a.user_id = m.user_id AND a.entry_date = m.entry_date
		WHERE m.user_id = $1 AND m.entry_date >= $2
		ORDER BY m.entry_date DESC
	`, userID, analysis.CalendarDay(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	for rows.Next() {
		var (
			e    models.JournalEntry
			date time.Time
		)
		if err := rows.Scan(&date, &e.MoodValue, &e.MoodLabel, &e.QuickNote,
			&e.SleepHours, &e.ExerciseMinutes, &e.SocialInteraction, &e.WorkStressLevel); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		e.SetDate(date)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func (r *moodEntryRepository) ListCheckInDates(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT entry_date FROM mood_entries
		WHERE user_id = $1
		ORDER BY entry_date DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-in dates: %w", err)
	}

	dates, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, fmt.Errorf("collect check-in dates: %w", err)
	}
	return dates, nil
}

type activityRepository struct {
	pool *pgxpool.Pool
}

func (r *activityRepository) Upsert(ctx context.Context, a *models.Activity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activities (user_id, entry_date, sleep_hours, exercise_minutes, social_interaction, caffeine_intake, work_stress_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, entry_date) DO UPDATE
		SET sleep_hours = EXCLUDED.sleep_hours,
		    exercise_minutes = EXCLUDED.exercise_minutes,
		    social_interaction = EXCLUDED.social_interaction,
		    caffeine_intake = EXCLUDED.caffeine_intake,
		    work_stress_level = EXCLUDED.work_stress_level
	`, a.UserID, a.EntryDate, a.SleepHours, a.ExerciseMinutes, a.SocialInteraction, a.CaffeineIntake, a.WorkStressLevel)
	if err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}
	return nil
}

func (r *activityRepository) CreateIfAbsent(ctx context.Context, a *models.Activity) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO activities (user_id, entry_date, sleep_hours, exercise_minutes, social_interaction, caffeine_intake, work_stress_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, entry_date) DO NOTHING
	`, a.UserID, a.EntryDate, a.SleepHours, a.ExerciseMinutes, a.SocialInteraction, a.CaffeineIntake, a.WorkStressLevel)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}
