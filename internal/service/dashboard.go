package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonnyWalker81/vibecheck/backend/internal/analysis"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

type dashboardService struct {
	entryRepo repository.MoodEntryRepository
	engine    *analysis.Engine
	windows   Windows
	now       func() time.Time
}

// NewDashboardService creates a dashboard service
func NewDashboardService(entryRepo repository.MoodEntryRepository, windows Windows) DashboardService {
	return &dashboardService{
		entryRepo: entryRepo,
		engine:    analysis.NewEngine(),
		windows:   windows,
		now:       time.Now,
	}
}

// GetDashboard reads the recent window, the insight window and the streak dates
// concurrently. Any read failure fails the whole view.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*models.DashboardResponse, error) {
	day := today(s.now)

	var (
		recent, history []models.JournalEntry
		dates           []time.Time
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recent, err = s.entryRepo.ListJournal(gctx, userID, day.AddDate(0, 0, -s.windows.Dashboard))
		if err != nil {
			return fmt.Errorf("recent entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.entryRepo.ListJournal(gctx, userID, day.AddDate(0, 0, -s.windows.Insights))
		if err != nil {
			return fmt.Errorf("insight history: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		dates, err = s.entryRepo.ListCheckInDates(gctx, userID, s.windows.StreakLookback)
		if err != nil {
			return fmt.Errorf("check-in dates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	stats := analysis.Summarize(recent)
	if len(recent) > 0 {
		stats.CurrentStreak = analysis.ComputeStreak(dates)
	}

	insights := s.engine.Generate(analysis.ToDailyRecords(history))
	for _, insight := range insights {
		metrics.InsightsGeneratedTotal.WithLabelValues(insight.Title).Inc()
	}

	if recent == nil {
		recent = []models.JournalEntry{}
	}
	return &models.DashboardResponse{
		MoodData: recent,
		Insights: insights,
		Stats:    stats,
	}, nil
}
