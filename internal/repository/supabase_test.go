package repository

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/pkg/supabase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return supabase.NewClient(srv.URL, "key")
}

func TestMoodEntryRepository_ListJournalJoinsActivities(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/v1/mood_entries":
			if got := r.URL.Query().Get("entry_date"); got != "gte.2025-03-04" {
				t.Errorf("entry_date filter = %q", got)
			}
			_, _ = w.Write([]byte(`[
				{"entry_date":"2025-03-10","mood_value":8,"mood_label":"Great","quick_note":"gym"},
				{"entry_date":"2025-03-09","mood_value":5,"mood_label":"Meh","quick_note":""}
			]`))
		case "/rest/v1/activities":
			_, _ = w.Write([]byte(`[
				{"entry_date":"2025-03-10","sleep_hours":8,"exercise_minutes":45,"social_interaction":true,"work_stress_level":3}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	repo := NewMoodEntryRepository(client)
	since := time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListJournal(context.Background(), "u1", since)
	if err != nil {
		t.Fatalf("ListJournal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Date != "2025-03-10" || got[0].Day != "Mon" {
		t.Errorf("first entry date = %q day = %q", got[0].Date, got[0].Day)
	}
	if got[0].ExerciseMinutes == nil || *got[0].ExerciseMinutes != 45 {
		t.Errorf("activity not joined: %+v", got[0])
	}
	if got[1].SleepHours != nil || got[1].SocialInteraction != nil {
		t.Errorf("missing activity should be nil: %+v", got[1])
	}
}

func TestMoodEntryRepository_ListCheckInDates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "30" {
			t.Errorf("limit = %q", got)
		}
		_, _ = w.Write([]byte(`[{"entry_date":"2025-03-10"},{"entry_date":"2025-03-09"}]`))
	})

	dates, err := NewMoodEntryRepository(client).ListCheckInDates(context.Background(), "u1", 30)
	if err != nil {
		t.Fatalf("ListCheckInDates: %v", err)
	}
	if len(dates) != 2 || !dates[0].Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("dates = %v", dates)
	}
}

func TestUserRepository_NotFoundAndConflict(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key"}`))
	})
	repo := NewUserRepository(client)

	if _, err := repo.GetByEmail(context.Background(), "nobody@test.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByEmail error = %v, want ErrNotFound", err)
	}

	_, err := repo.Create(context.Background(), &models.User{ID: "u1", Username: "demo_user", Email: "demo@test.com"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Create error = %v, want ErrConflict", err)
	}
}

func TestMoodEntryRepository_WritePayloads(t *testing.T) {
	score, label := 0.7, "positive"
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		write         func(MoodEntryRepository, *models.MoodEntry) error
		entry         models.MoodEntry
		wantPrefer    string
		wantScore     string
		wantEntryTime bool
	}{
		{
			name:       "upsert without note clears sentiment",
			write:      func(r MoodEntryRepository, e *models.MoodEntry) error { return r.Upsert(context.Background(), e) },
			entry:      models.MoodEntry{UserID: "u1", EntryDate: date, EntryTime: "09:30:00", MoodValue: 4, MoodLabel: "Meh"},
			wantPrefer: "resolution=merge-duplicates",
			wantScore:  "null",
		},
		{
			name:  "upsert with note sends sentiment",
			write: func(r MoodEntryRepository, e *models.MoodEntry) error { return r.Upsert(context.Background(), e) },
			entry: models.MoodEntry{UserID: "u1", EntryDate: date, EntryTime: "09:30:00", MoodValue: 8, MoodLabel: "Great",
				QuickNote: "great day", SentimentScore: &score, SentimentLabel: &label},
			wantPrefer: "resolution=merge-duplicates",
			wantScore:  "0.7",
		},
		{
			name:          "insert if absent keeps entry time",
			write:         func(r MoodEntryRepository, e *models.MoodEntry) error { return r.CreateIfAbsent(context.Background(), e) },
			entry:         models.MoodEntry{UserID: "u1", EntryDate: date, EntryTime: "12:00:00", MoodValue: 7, MoodLabel: "Good"},
			wantPrefer:    "resolution=ignore-duplicates",
			wantScore:     "null",
			wantEntryTime: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]json.RawMessage
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if prefer := r.Header.Get("Prefer"); !strings.Contains(prefer, tt.wantPrefer) {
					t.Errorf("Prefer = %q, want %q", prefer, tt.wantPrefer)
				}
				if got := r.URL.Query().Get("on_conflict"); got != "user_id,entry_date" {
					t.Errorf("on_conflict = %q", got)
				}
				body, _ := io.ReadAll(r.Body)
				if err := json.Unmarshal(body, &payload); err != nil {
					t.Errorf("decode payload %s: %v", body, err)
				}
				_, _ = w.Write([]byte(`[]`))
			})

			entry := tt.entry
			if err := tt.write(NewMoodEntryRepository(client), &entry); err != nil {
				t.Fatalf("write: %v", err)
			}

			for _, key := range []string{"sentiment_score", "sentiment_label"} {
				if _, ok := payload[key]; !ok {
					t.Errorf("payload missing %q: %v", key, payload)
				}
			}
			if got := string(payload["sentiment_score"]); got != tt.wantScore {
				t.Errorf("sentiment_score = %s, want %s", got, tt.wantScore)
			}
			if _, ok := payload["entry_time"]; ok != tt.wantEntryTime {
				t.Errorf("entry_time present = %v, want %v", ok, tt.wantEntryTime)
			}
		})
	}
}
