package models

import "time"

// DateLayout is the wire and storage format for calendar dates
const DateLayout = "2006-01-02"

// User represents a registered journal user
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name"`
	AgeRange      string    `json:"age_range"`
	WellnessGoals []string  `json:"wellness_goals"`
	CreatedAt     time.Time `json:"created_at"`
}

// MoodEntry is one user's mood for one calendar day.
// (UserID, EntryDate) is the natural key; a later write for the same day replaces
// the mood fields instead of adding a row.
type MoodEntry struct {
	UserID         string    `json:"user_id"`
	EntryDate      time.Time `json:"entry_date"`
	EntryTime      string    `json:"entry_time"`
	MoodValue      int       `json:"mood_value"`
	MoodLabel      string    `json:"mood_label"`
	QuickNote      string    `json:"quick_note"`
	SentimentScore *float64  `json:"sentiment_score,omitempty"`
	SentimentLabel *string   `json:"sentiment_label,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Activity holds the behavioural data logged alongside a mood entry.
// It shares the (UserID, EntryDate) natural key with MoodEntry.
type Activity struct {
	UserID            string    `json:"user_id"`
	EntryDate         time.Time `json:"entry_date"`
	SleepHours        *float64  `json:"sleep_hours"`
	ExerciseMinutes   int       `json:"exercise_minutes"`
	SocialInteraction bool      `json:"social_interaction"`
	CaffeineIntake    int       `json:"caffeine_intake"`
	WorkStressLevel   int       `json:"work_stress_level"`
}

// Activity defaults applied when a field is omitted from a submission
const (
	DefaultExerciseMinutes = 0
	DefaultCaffeineIntake  = 0
	DefaultWorkStressLevel = 5
	DefaultAgeRange        = "25-34"
)

// JournalEntry is a mood entry left-joined with its activity row.
// Activity fields are nil when no activity was logged for that day.
type JournalEntry struct {
	EntryDate         time.Time `json:"-"`
	Date              string    `json:"entry_date"`
	Day               string    `json:"day"`
	MoodValue         int       `json:"mood_value"`
	MoodLabel         string    `json:"mood_label"`
	QuickNote         string    `json:"quick_note"`
	SleepHours        *float64  `json:"sleep_hours"`
	ExerciseMinutes   *int      `json:"exercise_minutes"`
	SocialInteraction *bool     `json:"social_interaction"`
	WorkStressLevel   *int      `json:"work_stress_level"`
}

// DailyRecord is the per-day view the insight engine consumes.
// Nil pointers mean the activity value was never recorded.
type DailyRecord struct {
	Date              time.Time
	MoodValue         int
	ExerciseMinutes   *int
	SocialInteraction *bool
	SleepHours        *float64
}

// ActivityRequest is the optional activity block of a mood submission
type ActivityRequest struct {
	SleepHours        *float64 `json:"sleep_hours" binding:"omitempty,gte=0,lte=24"`
	ExerciseMinutes   *int     `json:"exercise_minutes" binding:"omitempty,gte=0,lte=1440"`
	SocialInteraction *bool    `json:"social_interaction"`
	CaffeineIntake    *int     `json:"caffeine_intake" binding:"omitempty,gte=0"`
	WorkStressLevel   *int     `json:"work_stress_level" binding:"omitempty,gte=0,lte=10"`
}

// CreateMoodEntryRequest represents a mood submission
type CreateMoodEntryRequest struct {
	MoodValue  int              `json:"mood_value" binding:"required,gte=1,lte=10"`
	MoodLabel  string           `json:"mood_label" binding:"required,max=50"`
	QuickNote  string           `json:"quick_note" binding:"max=2000"`
	EntryDate  string           `json:"entry_date" binding:"omitempty,datetime=2006-01-02"`
	Activities *ActivityRequest `json:"activities"`
}

// MoodEntryResponse is returned after a successful submission
type MoodEntryResponse struct {
	Success    bool       `json:"success"`
	Message    string     `json:"message"`
	AIAnalysis *Sentiment `json:"ai_analysis"`
	Insights   []Insight  `json:"insights"`
}

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Username      string   `json:"username" binding:"required,min=3,max=50"`
	Email         string   `json:"email" binding:"required,email,max=100"`
	Password      string   `json:"password" binding:"required,min=6,max=72"`
	FirstName     string   `json:"first_name" binding:"required,max=50"`
	AgeRange      string   `json:"age_range" binding:"max=20"`
	WellnessGoals []string `json:"wellness_goals"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// DemoCredentials describes the seeded demo account
type DemoCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// SetDate sets the entry's date along with its wire forms
func (e *JournalEntry) SetDate(t time.Time) {
	e.EntryDate = t
	e.Date = t.Format(DateLayout)
	e.Day = t.Format("Mon")
}
