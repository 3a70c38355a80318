// Package storage opens the configured persistence driver and hands out its
// repositories.
package storage

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository/memory"
	"github.com/JonnyWalker81/vibecheck/backend/internal/repository/postgres"
	"github.com/JonnyWalker81/vibecheck/backend/pkg/supabase"
)

// Store is a live storage backend
type Store interface {
	Users() repository.UserRepository
	MoodEntries() repository.MoodEntryRepository
	Activities() repository.ActivityRepository
	Ping(ctx context.Context) error
	Close()
}

// Open connects to the driver named in cfg
func Open(ctx context.Context, cfg config.StorageConfig, sb config.SupabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverSupabase:
		logger.Info("Using Supabase storage", logger.String("url", sb.URL))
		return NewSupabaseStore(supabase.NewClient(sb.URL, sb.ServiceKey)), nil
	case config.DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

type supabaseStore struct {
	client     *supabase.Client
	users      repository.UserRepository
	entries    repository.MoodEntryRepository
	activities repository.ActivityRepository
}

// NewSupabaseStore wraps client in a Store
func NewSupabaseStore(client *supabase.Client) Store {
	return &supabaseStore{
		client:     client,
		users:      repository.NewUserRepository(client),
		entries:    repository.NewMoodEntryRepository(client),
		activities: repository.NewActivityRepository(client),
	}
}

func (s *supabaseStore) Users() repository.UserRepository { return s.users }
func (s *supabaseStore) MoodEntries() repository.MoodEntryRepository { return s.entries }
func (s *supabaseStore) Activities() repository.ActivityRepository { return s.activities }
func (s *supabaseStore) Ping(ctx context.Context) error { return s.client.Ping(ctx) }
func (s *supabaseStore) Close() {}
