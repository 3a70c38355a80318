package sentiment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.7, "Your writing shows positive vibes!"},
		{0.5, "Your writing shows positive vibes!"},
		{0, "Neutral feelings - totally normal"},
		{-0.1, "Neutral feelings - totally normal"},
		{-0.7, "Some tough emotions there - you're not alone"},
	}

	for _, tt := range tests {
		if got := Message(tt.score); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestKeywordAnalyzer(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantScore      float64
		wantLabel      string
		wantConfidence float64
	}{
		{"positive", "Had a GREAT day, feeling happy", 0.7, LabelPositive, 0.8},
		{"negative", "so tired and stressed", -0.7, LabelNegative, 0.8},
		{"tie", "good but tired", 0, LabelNeutral, 0.6},
		{"none", "went to the store", 0, LabelNeutral, 0.6},
		{"substring", "lovely weather", 0.7, LabelPositive, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeywordAnalyzer{}.Analyze(context.Background(), tt.text)
			if got.Score != tt.wantScore || got.Label != tt.wantLabel {
				t.Errorf("Analyze() = (%v, %s), want (%v, %s)", got.Score, got.Label, tt.wantScore, tt.wantLabel)
			}
			if got.Confidence == nil || *got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Message != Message(tt.wantScore) {
				t.Errorf("Message = %q", got.Message)
			}
		})
	}
}

func TestNew_SelectsByKey(t *testing.T) {
	if New(config.SentimentConfig{}).Ready() {
		t.Error("analyzer without key should not report ready")
	}
	if !New(config.SentimentConfig{APIKey: "hf_test"}).Ready() {
		t.Error("analyzer with key should report ready")
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.SentimentConfig{APIKey: "hf_test", URL: server.URL, Timeout: time.Second})
}

func TestClient_PicksHighestLabel(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantScore float64
		wantLabel string
		wantConf  float64
	}{
		{"negative", `[[{"label":"LABEL_0","score":0.9},{"label":"LABEL_1","score":0.07},{"label":"LABEL_2","score":0.03}]]`, -0.7, LabelNegative, 0.9},
		{"positive", `[[{"label":"LABEL_1","score":0.2},{"label":"LABEL_2","score":0.8}]]`, 0.7, LabelPositive, 0.8},
		{"named labels", `[[{"label":"neutral","score":0.6},{"label":"positive","score":0.4}]]`, 0, LabelNeutral, 0.6},
		{"unknown label", `[[{"label":"LABEL_9","score":0.99}]]`, 0, LabelNeutral, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer hf_test" {
					t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			got := c.Analyze(context.Background(), "some note")
			if got.Score != tt.wantScore || got.Label != tt.wantLabel {
				t.Errorf("Analyze() = (%v, %s), want (%v, %s)", got.Score, got.Label, tt.wantScore, tt.wantLabel)
			}
			if got.Confidence == nil || *got.Confidence != tt.wantConf {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConf)
			}
		})
	}
}

func TestClient_ErrorsYieldNeutral(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}},
		{"empty list", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}},
		{"malformed", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error":"loading"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestClient(t, tt.handler).Analyze(context.Background(), "note")
			if got.Score != 0 || got.Label != LabelNeutral || got.Message != "AI temporarily unavailable" {
				t.Errorf("Analyze() = %+v, want neutral unavailable", got)
			}
			if got.Confidence != nil {
				t.Errorf("Confidence = %v, want nil", *got.Confidence)
			}
		})
	}
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < breakerFailureThreshold+2; i++ {
		c.Analyze(context.Background(), "note")
	}

	if got := calls.Load(); got != breakerFailureThreshold {
		t.Errorf("upstream calls = %d, want %d", got, breakerFailureThreshold)
	}
}
