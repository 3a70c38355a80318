package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/pkg/supabase"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory}, config.SupabaseConfig{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if store.Users() == nil || store.MoodEntries() == nil || store.Activities() == nil {
		t.Error("memory store returned a nil repository")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.StorageConfig{Driver: "sqlite"}, config.SupabaseConfig{}); err == nil {
		t.Fatal("Open() expected error for unknown driver")
	}
}

func TestSupabaseStore_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := NewSupabaseStore(supabase.NewClient(server.URL, "key"))
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	bad := NewSupabaseStore(supabase.NewClient(server.URL, "wrong"))
	if err := bad.Ping(context.Background()); err == nil {
		t.Error("Ping() expected error with wrong key")
	}
}
