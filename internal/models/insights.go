package models

// Confidence represents the confidence level of an insight
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Trend labels reported on the dashboard
const (
	TrendStarting  = "starting"
	TrendImproving = "improving"
	TrendStable    = "stable"
)

// Insight is a human-readable observation correlating an activity with mood.
// Insights are computed per request and never stored.
type Insight struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ConfidenceLevel Confidence `json:"confidence_level"`
}

// Sentiment is the result of analysing a quick note
type Sentiment struct {
	Score      float64  `json:"score"`
	Label      string   `json:"label"`
	Confidence *float64 `json:"confidence,omitempty"`
	Message    string   `json:"message"`
}

// DashboardStats holds the aggregate numbers shown on the dashboard
type DashboardStats struct {
	CurrentStreak int     `json:"current_streak"`
	AverageMood   float64 `json:"average_mood"`
	Trend         string  `json:"trend"`
	TotalEntries  int     `json:"total_entries"`
}

// DashboardResponse is the API response for the dashboard
type DashboardResponse struct {
	MoodData []JournalEntry `json:"mood_data"`
	Insights []Insight      `json:"insights"`
	Stats    DashboardStats `json:"stats"`
}
