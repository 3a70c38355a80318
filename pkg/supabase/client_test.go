package supabase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_UpsertSendsConflictTarget(t *testing.T) {
	var gotPrefer, gotConflict, gotKey, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/v1/mood_entries" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotPrefer = r.Header.Get("Prefer")
		gotConflict = r.URL.Query().Get("on_conflict")
		gotKey = r.Header.Get("apikey")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`[{"user_id":"u1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "service-key")
	body, err := c.Upsert(context.Background(), "mood_entries", map[string]interface{}{"user_id": "u1"}, "user_id,entry_date")
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if string(body) != `[{"user_id":"u1"}]` {
		t.Errorf("body = %s", body)
	}
	if !strings.Contains(gotPrefer, "resolution=merge-duplicates") {
		t.Errorf("Prefer = %q", gotPrefer)
	}
	if gotConflict != "user_id,entry_date" {
		t.Errorf("on_conflict = %q", gotConflict)
	}
	if gotKey != "service-key" {
		t.Errorf("apikey = %q", gotKey)
	}
	if !strings.Contains(gotBody, `"user_id":"u1"`) {
		t.Errorf("payload = %s", gotBody)
	}
}

func TestClient_InsertIgnoreUsesIgnoreDuplicates(t *testing.T) {
	var gotPrefer string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if _, err := c.InsertIgnore(context.Background(), "activities", []int{1}, "user_id,entry_date"); err != nil {
		t.Fatalf("InsertIgnore: %v", err)
	}
	if !strings.Contains(gotPrefer, "resolution=ignore-duplicates") {
		t.Errorf("Prefer = %q", gotPrefer)
	}
}

func TestClient_QueryEncodesFilters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Query(context.Background(), "mood_entries", map[string]interface{}{
		"user_id": "eq.u1",
		"limit":   30,
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !strings.Contains(gotQuery, "user_id=eq.u1") || !strings.Contains(gotQuery, "limit=30") {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestClient_ErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Insert(context.Background(), "users", map[string]string{"username": "x"})

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !apiErr.IsUniqueViolation() {
		t.Errorf("expected unique violation, got %+v", apiErr)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestClient_ErrorWithPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Query(context.Background(), "users", nil)

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Message != "upstream down" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestClient_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "good").Ping(context.Background()); err != nil {
		t.Errorf("Ping with valid key: %v", err)
	}
	if err := NewClient(srv.URL, "bad").Ping(context.Background()); err == nil {
		t.Error("Ping with invalid key should fail")
	}
}
