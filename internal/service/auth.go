package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	cost     int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
	}
}

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	// Binding limits runes; bcrypt limits bytes
	if len(req.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := NewID()
	if err != nil {
		return nil, err
	}

	ageRange := req.AgeRange
	if ageRange == "" {
		ageRange = models.DefaultAgeRange
	}
	goals := req.WellnessGoals
	if goals == nil {
		goals = []string{}
	}

	user, err := s.userRepo.Create(ctx, &models.User{
		ID:            id,
		Username:      strings.TrimSpace(req.Username),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:  string(hash),
		FirstName:     strings.TrimSpace(req.FirstName),
		AgeRange:      ageRange,
		WellnessGoals: goals,
	})
	if errors.Is(err, repository.ErrConflict) {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return nil, ErrUserExists
	}
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	logger.FromContext(ctx).Info("User registered", logger.UserID(user.ID))
	return s.respond(user)
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return s.respond(user)
}

func (s *authService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) respond(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        *user,
	}, nil
}
