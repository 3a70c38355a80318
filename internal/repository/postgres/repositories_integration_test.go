//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

// Run with:
//
//	VIBECHECK_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repository/postgres/
func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("VIBECHECK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("VIBECHECK_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx, dsn, 4)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *DB, goals []string) *models.User {
	t.Helper()
	id := uuid.NewString()
	user, err := db.Users().Create(context.Background(), &models.User{
		ID:            id,
		Username:      "u_" + id[:8],
		Email:         id[:8] + "@test.com",
		PasswordHash:  "hash",
		FirstName:     "Test",
		AgeRange:      "25-34",
		WellnessGoals: goals,
	})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return user
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestUsers_Integration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, []string{"sleep better", "less stress"})

	got, err := db.Users().GetByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if len(got.WellnessGoals) != 2 || got.WellnessGoals[1] != "less stress" {
		t.Errorf("WellnessGoals = %v, want round trip", got.WellnessGoals)
	}

	tests := []struct {
		name string
		mut  func(u models.User) models.User
	}{
		{"duplicate username", func(u models.User) models.User { u.ID = uuid.NewString(); u.Email = "other@test.com"; return u }},
		{"duplicate email", func(u models.User) models.User { u.ID = uuid.NewString(); u.Username = "other_" + u.ID[:6]; return u }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dup := tt.mut(*user)
			if _, err := db.Users().Create(ctx, &dup); !errors.Is(err, repository.ErrConflict) {
				t.Errorf("Create error = %v, want ErrConflict", err)
			}
		})
	}

	if _, err := db.Users().GetByID(ctx, uuid.NewString()); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestMoodEntries_UpsertIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, nil)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := &models.MoodEntry{
		UserID: user.ID, EntryDate: day, EntryTime: "09:15:00",
		MoodValue: 8, MoodLabel: "Happy", QuickNote: "good run",
		SentimentScore: floatPtr(0.7), SentimentLabel: strPtr("positive"),
	}
	if err := db.MoodEntries().Upsert(ctx, first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}

	second := &models.MoodEntry{
		UserID: user.ID, EntryDate: day, EntryTime: "21:40:00",
		MoodValue: 3, MoodLabel: "Sad",
	}
	if err := db.MoodEntries().Upsert(ctx, second); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	var (
		count     int
		entryTime string
		mood      int
		score     *float64
		label     *string
	)
	err := db.pool.QueryRow(ctx, `
		SELECT COUNT(*) OVER (), entry_time::text, mood_value, sentiment_score, sentiment_label
		FROM mood_entries WHERE user_id = $1
	`, user.ID).Scan(&count, &entryTime, &mood, &score, &label)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}
	if entryTime != "09:15:00" {
		t.Errorf("entry_time = %q, want first save kept", entryTime)
	}
	if mood != 3 {
		t.Errorf("mood_value = %d, want 3", mood)
	}
	if score != nil || label != nil {
		t.Errorf("sentiment = %v/%v, want cleared", score, label)
	}

	// A seeded row never replaces a real one
	if err := db.MoodEntries().CreateIfAbsent(ctx, first); err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if err := db.pool.QueryRow(ctx, `SELECT mood_value FROM mood_entries WHERE user_id = $1`, user.ID).Scan(&mood); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if mood != 3 {
		t.Errorf("mood_value after CreateIfAbsent = %d, want 3", mood)
	}
}

func TestMoodEntries_ListJournalIntegration(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, nil)

	day1 := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, e := range []*models.MoodEntry{
		{UserID: user.ID, EntryDate: day1, EntryTime: "08:00:00", MoodValue: 6, MoodLabel: "Okay"},
		{UserID: user.ID, EntryDate: day2, EntryTime: "08:00:00", MoodValue: 9, MoodLabel: "Great"},
	} {
		if err := db.MoodEntries().Upsert(ctx, e); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	if err := db.Activities().Upsert(ctx, &models.Activity{
		UserID: user.ID, EntryDate: day2, SleepHours: floatPtr(7.5),
		ExerciseMinutes: 30, SocialInteraction: true, WorkStressLevel: 4,
	}); err != nil {
		t.Fatalf("Activities Upsert: %v", err)
	}

	entries, err := db.MoodEntries().ListJournal(ctx, user.ID, day1)
	if err != nil {
		t.Fatalf("ListJournal: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}

	newest, oldest := entries[0], entries[1]
	if newest.Date != "2025-03-10" || oldest.Date != "2025-03-09" {
		t.Errorf("order = %s, %s, want newest first", newest.Date, oldest.Date)
	}
	if newest.SleepHours == nil || *newest.SleepHours != 7.5 {
		t.Errorf("SleepHours = %v, want 7.5", newest.SleepHours)
	}
	if newest.ExerciseMinutes == nil || *newest.ExerciseMinutes != 30 {
		t.Errorf("ExerciseMinutes = %v, want 30", newest.ExerciseMinutes)
	}
	if oldest.SleepHours != nil || oldest.SocialInteraction != nil {
		t.Errorf("day without activity = %+v, want nil activity fields", oldest)
	}

	dates, err := db.MoodEntries().ListCheckInDates(ctx, user.ID, 1)
	if err != nil {
		t.Fatalf("ListCheckInDates: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(day2) {
		t.Errorf("dates = %v, want [%v]", dates, day2)
	}
}
