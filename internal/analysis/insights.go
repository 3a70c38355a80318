package analysis

import (
	"fmt"

	"github.com/JonnyWalker81/vibecheck/backend/internal/models"
)

const (
	// MinRecordsForInsights is the number of daily records required before any rule runs
	MinRecordsForInsights = 3

	// MaxInsights caps the number of insights returned
	MaxInsights = 3

	// InsightWindowDays is the lookback the dashboard uses for insight records
	InsightWindowDays = 14

	// Sleep partition boundaries, in hours
	GoodSleepHours = 7.5
	PoorSleepHours = 6.5
)

// Rule compares the mean mood of a group of days against a baseline group and
// produces an insight when the group is ahead by more than Threshold.
type Rule struct {
	Name string

	// Eligible narrows the records the rule looks at. Nil means every record.
	Eligible    func(models.DailyRecord) bool
	MinEligible int

	// Group and Baseline partition the eligible records. A record may fall in neither.
	Group       func(models.DailyRecord) bool
	Baseline    func(models.DailyRecord) bool
	MinGroup    int
	MinBaseline int

	Threshold float64

	// Emit builds the insight from the observed mean difference
	Emit func(delta float64) models.Insight
}

// Evaluate applies the rule to records. The boolean is false when a sample guard
// fails or the difference does not clear the threshold.
func (r Rule) Evaluate(records []models.DailyRecord) (models.Insight, bool) {
	eligible := records
	if r.Eligible != nil {
		eligible = filter(records, r.Eligible)
	}
	if len(eligible) < r.MinEligible {
		return models.Insight{}, false
	}

	group := filter(eligible, r.Group)
	baseline := filter(eligible, r.Baseline)
	if len(group) < r.MinGroup || len(baseline) < r.MinBaseline {
		return models.Insight{}, false
	}
	// Guards of zero would otherwise divide by zero
	if len(group) == 0 || len(baseline) == 0 {
		return models.Insight{}, false
	}

	groupMean := meanMood(group)
	baselineMean := meanMood(baseline)
	if !(groupMean > baselineMean+r.Threshold) {
		return models.Insight{}, false
	}

	return r.Emit(groupMean - baselineMean), true
}

// ExerciseRule reports a mood lift on days with any exercise
func ExerciseRule() Rule {
	exercised := func(d models.DailyRecord) bool {
		return d.ExerciseMinutes != nil && *d.ExerciseMinutes > 0
	}
	return Rule{
		Name:        "exercise",
		Group:       exercised,
		Baseline:    not(exercised),
		MinGroup:    2,
		MinBaseline: 1,
		Threshold:   0.5,
		Emit: func(delta float64) models.Insight {
			return models.Insight{
				Title:           "Exercise Mood Boost",
				Description:     fmt.Sprintf("Your mood is %.1f points higher on workout days!", delta),
				ConfidenceLevel: models.ConfidenceHigh,
			}
		},
	}
}

// SleepRule reports a mood lift after good sleep compared with poor sleep.
// Nights between PoorSleepHours and GoodSleepHours count toward the sample size
// but sit in neither group.
func SleepRule() Rule {
	return Rule{
		Name: "sleep",
		Eligible: func(d models.DailyRecord) bool {
			return d.SleepHours != nil
		},
		MinEligible: 3,
		Group: func(d models.DailyRecord) bool {
			return *d.SleepHours >= GoodSleepHours
		},
		Baseline: func(d models.DailyRecord) bool {
			return *d.SleepHours < PoorSleepHours
		},
		MinGroup:    1,
		MinBaseline: 1,
		Threshold:   0.5,
		Emit: func(delta float64) models.Insight {
			return models.Insight{
				Title:           "Sleep Quality Impact",
				Description:     fmt.Sprintf("Good sleep improves your mood by %.1f points!", delta),
				ConfidenceLevel: models.ConfidenceMedium,
			}
		},
	}
}

// SocialRule reports that social days tend to be better days.
// The description is qualitative and never includes the difference.
func SocialRule() Rule {
	social := func(d models.DailyRecord) bool {
		return d.SocialInteraction != nil && *d.SocialInteraction
	}
	return Rule{
		Name:        "social",
		Group:       social,
		Baseline:    not(social),
		MinGroup:    2,
		MinBaseline: 1,
		Threshold:   0.3,
		Emit: func(float64) models.Insight {
			return models.Insight{
				Title:           "Social Connection Power",
				Description:     "Social activities consistently boost your energy!",
				ConfidenceLevel: models.ConfidenceHigh,
			}
		},
	}
}

// DefaultRules returns the canonical rule set in evaluation order
func DefaultRules() []Rule {
	return []Rule{ExerciseRule(), SleepRule(), SocialRule()}
}

// Engine evaluates a fixed, ordered set of rules over a user's recent records
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine. With no rules it uses DefaultRules.
func NewEngine(rules ...Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Generate returns the insights whose rules fire, in rule order, at most MaxInsights.
// The result is never nil.
func (e *Engine) Generate(records []models.DailyRecord) []models.Insight {
	insights := make([]models.Insight, 0, MaxInsights)
	if len(records) < MinRecordsForInsights {
		return insights
	}

	for _, rule := range e.rules {
		if insight, ok := rule.Evaluate(records); ok {
			insights = append(insights, insight)
		}
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

var defaultEngine = NewEngine()

// GenerateInsights runs the default rule set
func GenerateInsights(records []models.DailyRecord) []models.Insight {
	return defaultEngine.Generate(records)
}

func filter(records []models.DailyRecord, keep func(models.DailyRecord) bool) []models.DailyRecord {
	out := make([]models.DailyRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func not(pred func(models.DailyRecord) bool) func(models.DailyRecord) bool {
	return func(d models.DailyRecord) bool { return !pred(d) }
}

func meanMood(records []models.DailyRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += float64(r.MoodValue)
	}
	return sum / float64(len(records))
}
