package service

import (
	"context"
	"errors"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/analysis"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

var (
	// ErrInvalidCredentials is returned when the email is unknown or the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when the username or email is already registered
	ErrUserExists = errors.New("username or email already exists")
	// ErrPasswordTooLong is returned for a password bcrypt cannot hash
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
	// ErrInvalidDate is returned for an entry_date that is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid entry date")
	// ErrFutureDate is returned for an entry_date after today
	ErrFutureDate = errors.New("entry date is in the future")
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// JournalService records mood entries and lists them back
type JournalService interface {
	SubmitEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntryResponse, error)
	// ListEntries returns entries from the last days days, most recent first
	ListEntries(ctx context.Context, userID string, days int) ([]models.JournalEntry, error)
}

// DashboardService assembles the dashboard view
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error)
}

// DemoService seeds the demo account
type DemoService interface {
	SeedDemo(ctx context.Context) (*models.DemoCredentials, error)
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID, username string) (string, time.Time, error)
}

// SentimentAnalyzer scores a quick note
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) models.Sentiment
}

// Windows are the lookback lengths, in days, used when reading history
type Windows struct {
	Dashboard      int
	Insights       int
	StreakLookback int
}

// DefaultWindows returns the dashboard, insight and streak windows used when
// none are configured
func DefaultWindows() Windows {
	return Windows{
		Dashboard:      analysis.DashboardWindowDays,
		Insights:       analysis.InsightWindowDays,
		StreakLookback: analysis.DefaultStreakLookback,
	}
}

// today is the current UTC calendar date
func today(now func() time.Time) time.Time {
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
