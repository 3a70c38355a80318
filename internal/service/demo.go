package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

// Demo account credentials
const (
	DemoUsername = "demo_user"
	DemoEmail    = "demo@test.com"
	DemoPassword = "demo123"

	demoEntryTime = "12:00:00"
)

type demoDay struct {
	daysAgo   int
	mood      int
	label     string
	sleep     float64
	exercise  int
	social    bool
	caffeine  int
	stress    int
	quickNote string
}

// demoWeek is the sample week seeded for the demo account, most recent first
var demoWeek = []demoDay{
	{0, 8, "Great", 8.0, 45, true, 1, 3, "Amazing workout this morning!"},
	{1, 7, "Good", 7.5, 0, false, 2, 4, "Productive work day"},
	{2, 4, "Meh", 6.0, 0, false, 0, 2, "Sunday blues"},
	{3, 9, "Amazing", 8.5, 60, false, 1, 2, "Best day ever!"},
	{4, 6, "Okay", 7.0, 0, false, 3, 7, "Work stress"},
	{5, 8, "Great", 7.5, 30, true, 1, 3, "Coffee with friends"},
	{6, 7, "Good", 6.5, 0, false, 4, 8, "Long but good day"},
}

type demoService struct {
	userRepo     repository.UserRepository
	entryRepo    repository.MoodEntryRepository
	activityRepo repository.ActivityRepository
	now          func() time.Time
}

// NewDemoService creates the demo seeding service
func NewDemoService(
	userRepo repository.UserRepository,
	entryRepo repository.MoodEntryRepository,
	activityRepo repository.ActivityRepository,
) DemoService {
	return &demoService{
		userRepo:     userRepo,
		entryRepo:    entryRepo,
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

// SeedDemo creates the demo user if needed and inserts the sample week.
// Days that already have data are left untouched, so seeding is repeatable.
func (s *demoService) SeedDemo(ctx context.Context) (*models.DemoCredentials, error) {
	user, err := s.demoUser(ctx)
	if err != nil {
		return nil, err
	}

	day := today(s.now)
	for _, d := range demoWeek {
		date := day.AddDate(0, 0, -d.daysAgo)
		if err := s.entryRepo.CreateIfAbsent(ctx, &models.MoodEntry{
			UserID:    user.ID,
			EntryDate: date,
			EntryTime: demoEntryTime,
			MoodValue: d.mood,
			MoodLabel: d.label,
			QuickNote: d.quickNote,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed demo entry: %w", err)
		}

		sleep := d.sleep
		if err := s.activityRepo.CreateIfAbsent(ctx, &models.Activity{
			UserID:            user.ID,
			EntryDate:         date,
			SleepHours:        &sleep,
			ExerciseMinutes:   d.exercise,
			SocialInteraction: d.social,
			CaffeineIntake:    d.caffeine,
			WorkStressLevel:   d.stress,
		}); err != nil {
			return nil, fmt.Errorf("failed to seed demo activity: %w", err)
		}
	}

	logger.FromContext(ctx).Info("Demo data ready", logger.UserID(user.ID), logger.Int("days", len(demoWeek)))
	return &models.DemoCredentials{
		Username: DemoUsername,
		Password: DemoPassword,
		Email:    DemoEmail,
	}, nil
}

func (s *demoService) demoUser(ctx context.Context) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, DemoUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up demo user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	id, err := NewID()
	if err != nil {
		return nil, err
	}

	user, err = s.userRepo.Create(ctx, &models.User{
		ID:            id,
		Username:      DemoUsername,
		Email:         DemoEmail,
		PasswordHash:  string(hash),
		FirstName:     "Demo",
		AgeRange:      models.DefaultAgeRange,
		WellnessGoals: []string{},
	})
	if errors.Is(err, repository.ErrConflict) {
		// Created concurrently
		return s.userRepo.GetByUsername(ctx, DemoUsername)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}
	return user, nil
}
