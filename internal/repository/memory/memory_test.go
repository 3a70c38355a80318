package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUsers_CreateAndConflict(t *testing.T) {
	ctx := context.Background()
	users := New().Users()

	created, err := users.Create(ctx, &models.User{ID: "u1", Username: "alice", Email: "alice@test.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CreatedAt.IsZero() || created.WellnessGoals == nil {
		t.Errorf("defaults not applied: %+v", created)
	}

	tests := []struct {
		name string
		user models.User
	}{
		{"same username", models.User{ID: "u2", Username: "alice", Email: "other@test.com"}},
		{"same email different case", models.User{ID: "u3", Username: "bob", Email: "ALICE@test.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := users.Create(ctx, &tt.user); !errors.Is(err, repository.ErrConflict) {
				t.Errorf("err = %v, want ErrConflict", err)
			}
		})
	}

	if _, err := users.GetByEmail(ctx, "missing@test.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByEmail err = %v, want ErrNotFound", err)
	}
	if u, err := users.GetByUsername(ctx, "alice"); err != nil || u.ID != "u1" {
		t.Errorf("GetByUsername = %+v, %v", u, err)
	}
}

func TestMoodEntries_UpsertReplacesSameDay(t *testing.T) {
	ctx := context.Background()
	store := New()
	entries := store.MoodEntries()

	morning := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 21, 0, 0, 0, time.UTC)

	if err := entries.Upsert(ctx, &models.MoodEntry{UserID: "u1", EntryDate: morning, MoodValue: 4, MoodLabel: "Meh"}); err != nil {
		t.Fatal(err)
	}
	if err := entries.Upsert(ctx, &models.MoodEntry{UserID: "u1", EntryDate: evening, MoodValue: 8, MoodLabel: "Great"}); err != nil {
		t.Fatal(err)
	}

	got, err := entries.ListJournal(ctx, "u1", date(2025, 3, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 entry per day", len(got))
	}
	if got[0].MoodValue != 8 || got[0].MoodLabel != "Great" {
		t.Errorf("entry not replaced: %+v", got[0])
	}
}

func TestMoodEntries_CreateIfAbsentKeepsExisting(t *testing.T) {
	ctx := context.Background()
	entries := New().MoodEntries()
	d := date(2025, 3, 10)

	_ = entries.Upsert(ctx, &models.MoodEntry{UserID: "u1", EntryDate: d, MoodValue: 3, MoodLabel: "Low"})
	_ = entries.CreateIfAbsent(ctx, &models.MoodEntry{UserID: "u1", EntryDate: d, MoodValue: 9, MoodLabel: "Amazing"})

	got, _ := entries.ListJournal(ctx, "u1", d)
	if len(got) != 1 || got[0].MoodValue != 3 {
		t.Errorf("existing entry overwritten: %+v", got)
	}
}

func TestMoodEntries_ListJournalJoinAndOrder(t *testing.T) {
	ctx := context.Background()
	store := New()
	entries, activities := store.MoodEntries(), store.Activities()

	for i, mood := range []int{7, 5, 9} {
		_ = entries.Upsert(ctx, &models.MoodEntry{UserID: "u1", EntryDate: date(2025, 3, 8+i), MoodValue: mood, MoodLabel: "x"})
	}
	_ = entries.Upsert(ctx, &models.MoodEntry{UserID: "u2", EntryDate: date(2025, 3, 10), MoodValue: 1, MoodLabel: "other user"})

	sleep := 8.0
	_ = activities.Upsert(ctx, &models.Activity{UserID: "u1", EntryDate: date(2025, 3, 10), SleepHours: &sleep, ExerciseMinutes: 30, SocialInteraction: true, WorkStressLevel: 4})

	got, err := entries.ListJournal(ctx, "u1", date(2025, 3, 9))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (cutoff and user scoping)", len(got))
	}
	if got[0].Date != "2025-03-10" || got[1].Date != "2025-03-09" {
		t.Errorf("order = %s, %s", got[0].Date, got[1].Date)
	}
	if got[0].ExerciseMinutes == nil || *got[0].ExerciseMinutes != 30 || got[0].SocialInteraction == nil || !*got[0].SocialInteraction {
		t.Errorf("activity not joined: %+v", got[0])
	}
	if got[1].ExerciseMinutes != nil || got[1].SleepHours != nil {
		t.Errorf("day without activity should have nil fields: %+v", got[1])
	}
}

func TestMoodEntries_ListCheckInDates(t *testing.T) {
	ctx := context.Background()
	entries := New().MoodEntries()

	for d := 1; d <= 40; d++ {
		_ = entries.Upsert(ctx, &models.MoodEntry{UserID: "u1", EntryDate: date(2025, 1, d), MoodValue: 5, MoodLabel: "ok"})
	}

	dates, err := entries.ListCheckInDates(ctx, "u1", 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(dates) != 30 {
		t.Fatalf("len = %d, want 30", len(dates))
	}
	if !dates[0].Equal(date(2025, 2, 9)) {
		t.Errorf("most recent = %v, want 2025-02-09", dates[0])
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].Before(dates[i-1]) {
			t.Fatalf("dates not descending at %d", i)
		}
	}
}
