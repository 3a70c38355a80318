package sentiment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/internal/logger"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

// Breaker settings for the inference endpoint
const (
	breakerFailureThreshold = 3
	breakerOpenTimeout      = 30 * time.Second
	maxErrorBody            = 512
)

// labelScores maps the model's output labels to a score and label
var labelScores = map[string]struct {
	score float64
	label string
}{
	"LABEL_0":  {negativeScore, LabelNegative},
	"LABEL_1":  {0, LabelNeutral},
	"LABEL_2":  {positiveScore, LabelPositive},
	"negative": {negativeScore, LabelNegative},
	"neutral":  {0, LabelNeutral},
	"positive": {positiveScore, LabelPositive},
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Client calls a Hugging Face text classification model
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[prediction]
}

// NewClient creates a client for cfg.URL authenticated with cfg.APIKey
func NewClient(cfg config.SentimentConfig) *Client {
	url := cfg.URL
	if url == "" {
		url = config.DefaultSentimentURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		url:        url,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
	c.breaker = gobreaker.NewCircuitBreaker[prediction](gobreaker.Settings{
		Name:    "sentiment",
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	})
	return c
}

func (c *Client) Ready() bool { return true }

// Analyze classifies text. Errors and an open breaker produce a neutral result.
func (c *Client) Analyze(ctx context.Context, text string) models.Sentiment {
	start := time.Now()
	best, err := c.breaker.Execute(func() (prediction, error) {
		return c.classify(ctx, text)
	})
	metrics.SentimentDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "circuit_open"
		}
		metrics.SentimentRequestsTotal.WithLabelValues("remote", outcome).Inc()
		logger.FromContext(ctx).Warn("Sentiment analysis failed", logger.Err(err))
		return unavailable()
	}
	metrics.SentimentRequestsTotal.WithLabelValues("remote", "success").Inc()

	mapped, ok := labelScores[best.Label]
	if !ok {
		mapped.label = LabelNeutral
	}
	confidence := best.Score
	return models.Sentiment{
		Score:      mapped.score,
		Label:      mapped.label,
		Confidence: &confidence,
		Message:    Message(mapped.score),
	}
}

// classify returns the highest-scoring prediction
func (c *Client) classify(ctx context.Context, text string) (prediction, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return prediction{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return prediction{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return prediction{}, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return prediction{}, fmt.Errorf("inference returned status %d: %s", resp.StatusCode, body)
	}

	// The model answers with one list of predictions per input
	var result [][]prediction
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return prediction{}, fmt.Errorf("decode response: %w", err)
	}
	if len(result) == 0 || len(result[0]) == 0 {
		return prediction{}, errors.New("inference returned no predictions")
	}

	best := result[0][0]
	for _, p := range result[0][1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best, nil
}
