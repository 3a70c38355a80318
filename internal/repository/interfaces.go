package repository

import (
	"context"
	"errors"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks . UserRepository,MoodEntryRepository,ActivityRepository

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Create stores a new user. A taken username or email yields ErrConflict.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// MoodEntryRepository stores one mood entry per user per calendar day
type MoodEntryRepository interface {
	// Upsert writes the entry, replacing mood_value, mood_label, quick_note and
	// sentiment of an existing entry for the same day
	Upsert(ctx context.Context, entry *models.MoodEntry) error
	// CreateIfAbsent writes the entry only when the day has no entry yet
	CreateIfAbsent(ctx context.Context, entry *models.MoodEntry) error
	// ListJournal returns entries dated on or after since, left-joined with
	// their activity rows, most recent first
	ListJournal(ctx context.Context, userID string, since time.Time) ([]models.JournalEntry, error)
	// ListCheckInDates returns up to limit entry dates, most recent first
	ListCheckInDates(ctx context.Context, userID string, limit int) ([]time.Time, error)
}

// ActivityRepository stores the activity row that accompanies a mood entry
type ActivityRepository interface {
	Upsert(ctx context.Context, activity *models.Activity) error
	CreateIfAbsent(ctx context.Context, activity *models.Activity) error
}
