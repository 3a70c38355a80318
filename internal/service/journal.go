package service

import (
	"context"
	"fmt"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/analysis"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

const (
	// submissionInsights is how many insights accompany a saved entry
	submissionInsights = 2

	defaultListDays = 7
	maxListDays     = 365

	entryTimeLayout = "15:04:05"
)

type journalService struct {
	entryRepo    repository.MoodEntryRepository
	activityRepo repository.ActivityRepository
	sentiment    SentimentAnalyzer
	engine       *analysis.Engine
	windows      Windows
	now          func() time.Time
}

// NewJournalService creates a journal service
func NewJournalService(
	entryRepo repository.MoodEntryRepository,
	activityRepo repository.ActivityRepository,
	sentiment SentimentAnalyzer,
	windows Windows,
) JournalService {
	return &journalService{
		entryRepo:    entryRepo,
		activityRepo: activityRepo,
		sentiment:    sentiment,
		engine:       analysis.NewEngine(),
		windows:      windows,
		now:          time.Now,
	}
}

// parseEntryDate resolves an optional YYYY-MM-DD date, defaulting to today
func parseEntryDate(raw string, today time.Time) (time.Time, error) {
	if raw == "" {
		return today, nil
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	if date.After(today) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrFutureDate, raw)
	}
	return date, nil
}

func (s *journalService) SubmitEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntryResponse, error) {
	now := s.now().UTC()
	day := today(s.now)

	entryDate, err := parseEntryDate(req.EntryDate, day)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithEntryDate(ctx, entryDate)
	log := logger.FromContext(ctx)

	entry := &models.MoodEntry{
		UserID:    userID,
		EntryDate: entryDate,
		EntryTime: now.Format(entryTimeLayout),
		MoodValue: req.MoodValue,
		MoodLabel: req.MoodLabel,
		QuickNote: req.QuickNote,
	}

	var aiAnalysis *models.Sentiment
	if req.QuickNote != "" {
		result := s.sentiment.Analyze(ctx, req.QuickNote)
		aiAnalysis = &result
		entry.SentimentScore = &result.Score
		entry.SentimentLabel = &result.Label
	}

	if err := s.entryRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood entry: %w", err)
	}

	if req.Activities != nil {
		if err := s.activityRepo.Upsert(ctx, activityFromRequest(userID, entryDate, req.Activities)); err != nil {
			return nil, fmt.Errorf("failed to save activities: %w", err)
		}
	}
	metrics.MoodEntriesTotal.Inc()

	// The entry is already stored, so a failed read only costs the insights
	insights := []models.Insight{}
	recent, err := s.entryRepo.ListJournal(ctx, userID, day.AddDate(0, 0, -s.windows.Insights))
	if err != nil {
		log.Warn("failed to load history for insights", logger.Err(err))
	} else {
		insights = s.engine.Generate(analysis.ToDailyRecords(recent))
		if len(insights) > submissionInsights {
			insights = insights[:submissionInsights]
		}
	}

	log.Info("Mood entry saved",
		logger.MoodValue(req.MoodValue),
		logger.Int("note_length", len(req.QuickNote)),
		logger.Bool("has_activities", req.Activities != nil),
	)

	return &models.MoodEntryResponse{
		Success:    true,
		Message:    "Mood saved successfully!",
		AIAnalysis: aiAnalysis,
		Insights:   insights,
	}, nil
}

func activityFromRequest(userID string, date time.Time, req *models.ActivityRequest) *models.Activity {
	a := &models.Activity{
		UserID:          userID,
		EntryDate:       date,
		SleepHours:      req.SleepHours,
		ExerciseMinutes: models.DefaultExerciseMinutes,
		CaffeineIntake:  models.DefaultCaffeineIntake,
		WorkStressLevel: models.DefaultWorkStressLevel,
	}
	if req.ExerciseMinutes != nil {
		a.ExerciseMinutes = *req.ExerciseMinutes
	}
	if req.SocialInteraction != nil {
		a.SocialInteraction = *req.SocialInteraction
	}
	if req.CaffeineIntake != nil {
		a.CaffeineIntake = *req.CaffeineIntake
	}
	if req.WorkStressLevel != nil {
		a.WorkStressLevel = *req.WorkStressLevel
	}
	return a
}

func (s *journalService) ListEntries(ctx context.Context, userID string, days int) ([]models.JournalEntry, error) {
	if days <= 0 {
		days = defaultListDays
	}
	if days > maxListDays {
		days = maxListDays
	}

	entries, err := s.entryRepo.ListJournal(ctx, userID, today(s.now).AddDate(0, 0, -days))
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	return entries, nil
}
