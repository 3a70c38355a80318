// Package supabase is a minimal PostgREST client for Supabase tables using the
// service role key.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
)

// Client represents a Supabase client
type Client struct {
	URL        string
	ServiceKey string
	HTTPClient *http.Client
}

// NewClient creates a new Supabase client
func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		URL:        baseURL,
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Error is a non-2xx PostgREST response
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details"`
	Hint       string `json:"hint"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase error (status %d, code %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("supabase error (status %d): %s", e.StatusCode, e.Message)
}

// IsUniqueViolation reports whether the error is a Postgres unique_violation
func (e *Error) IsUniqueViolation() bool {
	return e.Code == "23505" || e.StatusCode == http.StatusConflict
}

// Query selects rows. query holds PostgREST parameters such as
// {"user_id": "eq.123", "order": "entry_date.desc", "limit": 30}.
func (c *Client) Query(ctx context.Context, table string, query map[string]interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodGet, table, query, nil, "")
}

// Insert inserts one row or a slice of rows and returns the representation
func (c *Client) Insert(ctx context.Context, table string, data interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, table, nil, data, "return=representation")
}

// InsertIgnore inserts rows, silently skipping those that collide on onConflict
func (c *Client) InsertIgnore(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, table, map[string]interface{}{"on_conflict": onConflict}, data,
		"return=representation,resolution=ignore-duplicates")
}

// Upsert inserts or updates rows. onConflict names the natural key columns,
// e.g. "user_id,entry_date".
func (c *Client) Upsert(ctx context.Context, table string, data interface{}, onConflict string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, table, map[string]interface{}{"on_conflict": onConflict}, data,
		"return=representation,resolution=merge-duplicates")
}

// DeleteWhere deletes records matching a query
func (c *Client) DeleteWhere(ctx context.Context, table string, query map[string]interface{}) error {
	_, err := c.do(ctx, http.MethodDelete, table, query, nil, "")
	return err
}

// Ping checks that the REST endpoint answers with the service key
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL+"/rest/v1/", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("supabase ping: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusUnauthorized {
		return &Error{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("apikey", c.ServiceKey)
	req.Header.Set("Authorization", "Bearer "+c.ServiceKey)
}

func (c *Client) do(ctx context.Context, method, table string, query map[string]interface{}, data interface{}, prefer string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", c.URL, table)

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", table, err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	for key, value := range query {
		q.Add(key, fmt.Sprintf("%v", value))
	}
	req.URL.RawQuery = q.Encode()

	c.authorize(req)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		return nil, apiErr
	}

	return respBody, nil
}
