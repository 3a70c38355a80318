// Package memory provides in-process repositories for development and tests.
// All data is lost on restart.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/analysis"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

type entryKey struct {
	userID string
	date   time.Time
}

func keyFor(userID string, date time.Time) entryKey {
	return entryKey{userID: userID, date: analysis.CalendarDay(date)}
}

// Store holds every table behind a single lock
type Store struct {
	mu         sync.RWMutex
	users      map[string]models.User
	entries    map[entryKey]models.MoodEntry
	activities map[entryKey]models.Activity
	now        func() time.Time
}

// New returns an empty in-memory store
func New() *Store {
	return &Store{
		users:      make(map[string]models.User),
		entries:    make(map[entryKey]models.MoodEntry),
		activities: make(map[entryKey]models.Activity),
		now:        time.Now,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) Users() repository.UserRepository { return userRepository{s} }
func (s *Store) MoodEntries() repository.MoodEntryRepository { return moodEntryRepository{s} }
func (s *Store) Activities() repository.ActivityRepository { return activityRepository{s} }

type userRepository struct{ s *Store }

func (r userRepository) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r userRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r userRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r userRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return nil, repository.ErrConflict
		}
	}

	stored := *user
	if stored.WellnessGoals == nil {
		stored.WellnessGoals = []string{}
	}
	stored.CreatedAt = r.s.now().UTC()
	r.s.users[stored.ID] = stored
	return &stored, nil
}

type moodEntryRepository struct{ s *Store }

func (r moodEntryRepository) Upsert(_ context.Context, e *models.MoodEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := keyFor(e.UserID, e.EntryDate)
	now := r.s.now().UTC()
	stored := *e
	stored.EntryDate = k.date
	if existing, ok := r.s.entries[k]; ok {
		// Only the mood fields and sentiment are replaced
		existing.MoodValue = e.MoodValue
		existing.MoodLabel = e.MoodLabel
		existing.QuickNote = e.QuickNote
		existing.SentimentScore = e.SentimentScore
		existing.SentimentLabel = e.SentimentLabel
		existing.UpdatedAt = now
		stored = existing
	} else {
		stored.CreatedAt = now
		stored.UpdatedAt = now
	}
	r.s.entries[k] = stored
	return nil
}

func (r moodEntryRepository) CreateIfAbsent(_ context.Context, e *models.MoodEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := keyFor(e.UserID, e.EntryDate)
	if _, ok := r.s.entries[k]; ok {
		return nil
	}
	now := r.s.now().UTC()
	stored := *e
	stored.EntryDate = k.date
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.entries[k] = stored
	return nil
}

func (r moodEntryRepository) ListJournal(_ context.Context, userID string, since time.Time) ([]models.JournalEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cutoff := analysis.CalendarDay(since)
	out := []models.JournalEntry{}
	for k, e := range r.s.entries {
		if k.userID != userID || k.date.Before(cutoff) {
			continue
		}
		je := models.JournalEntry{
			MoodValue: e.MoodValue,
			MoodLabel: e.MoodLabel,
			QuickNote: e.QuickNote,
		}
		je.SetDate(k.date)
		if a, ok := r.s.activities[k]; ok {
			minutes, social, stress := a.ExerciseMinutes, a.SocialInteraction, a.WorkStressLevel
			je.SleepHours = a.SleepHours
			je.ExerciseMinutes = &minutes
			je.SocialInteraction = &social
			je.WorkStressLevel = &stress
		}
		out = append(out, je)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

func (r moodEntryRepository) ListCheckInDates(_ context.Context, userID string, limit int) ([]time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	dates := []time.Time{}
	for k := range r.s.entries {
		if k.userID == userID {
			dates = append(dates, k.date)
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })
	if limit > 0 && len(dates) > limit {
		dates = dates[:limit]
	}
	return dates, nil
}

type activityRepository struct{ s *Store }

func (r activityRepository) Upsert(_ context.Context, a *models.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := keyFor(a.UserID, a.EntryDate)
	stored := *a
	stored.EntryDate = k.date
	r.s.activities[k] = stored
	return nil
}

func (r activityRepository) CreateIfAbsent(_ context.Context, a *models.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := keyFor(a.UserID, a.EntryDate)
	if _, ok := r.s.activities[k]; ok {
		return nil
	}
	stored := *a
	stored.EntryDate = k.date
	r.s.activities[k] = stored
	return nil
}
