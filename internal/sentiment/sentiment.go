// Package sentiment classifies the quick note attached to a mood entry.
//
// With an API key notes go to a Hugging Face inference endpoint behind a circuit
// breaker. Without one a keyword heuristic is used. Analysis never fails: any
// remote problem yields a neutral result.
package sentiment

import (
	"context"
	"strings"

	"github.com/JonnyWalker81/vibecheck/backend/internal/config"
	"github.com/JonnyWalker81/vibecheck/backend/internal/metrics"
	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

// Sentiment labels
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

const (
	positiveScore = 0.7
	negativeScore = -0.7

	unavailableMessage = "AI temporarily unavailable"
)

// Analyzer scores a free-text note
type Analyzer interface {
	Analyze(ctx context.Context, text string) models.Sentiment
	// Ready reports whether a remote model is configured
	Ready() bool
}

// New returns the remote client when an API key is configured, otherwise the
// keyword heuristic
func New(cfg config.SentimentConfig) Analyzer {
	if cfg.APIKey == "" {
		return KeywordAnalyzer{}
	}
	return NewClient(cfg)
}

// Message turns a score into the friendly text shown with the analysis
func Message(score float64) string {
	switch {
	case score >= 0.5:
		return "Your writing shows positive vibes!"
	case score >= -0.1:
		return "Neutral feelings - totally normal"
	default:
		return "Some tough emotions there - you're not alone"
	}
}

func unavailable() models.Sentiment {
	return models.Sentiment{Score: 0, Label: LabelNeutral, Message: unavailableMessage}
}

var (
	positiveWords = []string{"good", "great", "happy", "amazing", "wonderful", "excited", "love"}
	negativeWords = []string{"bad", "sad", "terrible", "awful", "hate", "stressed", "tired"}
)

// KeywordAnalyzer counts positive and negative keywords. Words match as
// substrings, so "lovely" counts as "love".
type KeywordAnalyzer struct{}

func (KeywordAnalyzer) Ready() bool { return false }

func (KeywordAnalyzer) Analyze(_ context.Context, text string) models.Sentiment {
	lower := strings.ToLower(text)
	pos, neg := countMatches(lower, positiveWords), countMatches(lower, negativeWords)

	var (
		score      float64
		label      = LabelNeutral
		confidence = 0.6
	)
	switch {
	case pos > neg:
		score, label, confidence = positiveScore, LabelPositive, 0.8
	case neg > pos:
		score, label, confidence = negativeScore, LabelNegative, 0.8
	}

	metrics.SentimentRequestsTotal.WithLabelValues("keyword", "success").Inc()
	return models.Sentiment{
		Score:      score,
		Label:      label,
		Confidence: &confidence,
		Message:    Message(score),
	}
}

func countMatches(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}
