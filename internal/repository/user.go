package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
	"github.com/JonnyWalker81/vibecheck/backend/pkg/supabase"
)

// userRow is the users table shape. models.User hides the password hash from JSON,
// so the row type carries it explicitly.
type userRow struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	FirstName     string    `json:"first_name"`
	AgeRange      string    `json:"age_range"`
	WellnessGoals []string  `json:"wellness_goals"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:            r.ID,
		Username:      r.Username,
		Email:         r.Email,
		PasswordHash:  r.PasswordHash,
		FirstName:     r.FirstName,
		AgeRange:      r.AgeRange,
		WellnessGoals: r.WellnessGoals,
		CreatedAt:     r.CreatedAt,
	}
}

type userRepository struct {
	client *supabase.Client
}

// NewUserRepository creates a Supabase-backed user repository
func NewUserRepository(client *supabase.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *userRepository) getOne(ctx context.Context, column, value string) (*models.User, error) {
	query := map[string]interface{}{
		column:   fmt.Sprintf("eq.%s", value),
		"select": "*",
		"limit":  1,
	}

	body, err := r.client.Query(ctx, "users", query)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var users []userRow
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(users) == 0 {
		return nil, ErrNotFound
	}

	return users[0].toModel(), nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	goals := user.WellnessGoals
	if goals == nil {
		goals = []string{}
	}
	data := map[string]interface{}{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"password_hash":  user.PasswordHash,
		"first_name":     user.FirstName,
		"age_range":      user.AgeRange,
		"wellness_goals": goals,
	}

	body, err := r.client.Insert(ctx, "users", data)
	if err != nil {
		var apiErr *supabase.Error
		if errors.As(err, &apiErr) && apiErr.IsUniqueViolation() {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	var users []userRow
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("no user returned")
	}

	return users[0].toModel(), nil
}
