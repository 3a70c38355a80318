package analysis

import (
	"math"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

// DashboardWindowDays is how many days of entries the dashboard shows
const DashboardWindowDays = 7

// Summarize computes count, rounded average and trend over entries sorted most
// recent first. CurrentStreak is left at zero for the caller to fill in.
func Summarize(entries []models.JournalEntry) models.DashboardStats {
	if len(entries) == 0 {
		return models.DashboardStats{Trend: models.TrendStarting}
	}

	var sum float64
	for _, e := range entries {
		sum += float64(e.MoodValue)
	}
	avg := sum / float64(len(entries))

	trend := models.TrendStable
	if len(entries) > 2 && entries[0].MoodValue > entries[len(entries)-1].MoodValue {
		trend = models.TrendImproving
	}

	return models.DashboardStats{
		AverageMood:  math.Round(avg*10) / 10,
		Trend:        trend,
		TotalEntries: len(entries),
	}
}

// ToDailyRecords projects joined journal entries onto the insight engine's input
func ToDailyRecords(entries []models.JournalEntry) []models.DailyRecord {
	records := make([]models.DailyRecord, len(entries))
	for i, e := range entries {
		records[i] = models.DailyRecord{
			Date:              e.EntryDate,
			MoodValue:         e.MoodValue,
			ExerciseMinutes:   e.ExerciseMinutes,
			SocialInteraction: e.SocialInteraction,
			SleepHours:        e.SleepHours,
		}
	}
	return records
}

