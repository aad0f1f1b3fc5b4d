package progression

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/2beens/liftlog/internal/gymstats/sets"
)

const (
	DefaultWeightIncrement = 2.5

	windowSize        = 10
	highRepsThreshold = 12
	lowRepsThreshold  = 8
	tooFewReps        = 6
	consecutiveHigh   = 3
	minProgressingSet = 3
	resetReps         = 8
)

var ErrInvalidIncrement = errors.New("invalid weight increment")

type SuggestionType string

const (
	SuggestionIncreaseWeight SuggestionType = "increase_weight"
	SuggestionDecreaseWeight SuggestionType = "decrease_weight"
	SuggestionMaintain       SuggestionType = "maintain"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type Config struct {
	// WeightIncrement is the plate step used for weight changes.
	// Zero means DefaultWeightIncrement.
	WeightIncrement float64
}

func (c Config) Validate() error {
	if math.IsNaN(c.WeightIncrement) || math.IsInf(c.WeightIncrement, 0) {
		return fmt.Errorf("%w: not a finite number", ErrInvalidIncrement)
	}
	if c.WeightIncrement < 0 {
		return fmt.Errorf("%w: negative increment %.2f", ErrInvalidIncrement, c.WeightIncrement)
	}
	return nil
}

func (c Config) increment() float64 {
	if c.WeightIncrement == 0 {
		return DefaultWeightIncrement
	}
	return c.WeightIncrement
}

type Stats struct {
	AvgWeight float64 `json:"avgWeight"`
	AvgReps   float64 `json:"avgReps"`
	MaxWeight float64 `json:"maxWeight"`
	MaxReps   float64 `json:"maxReps"`
	TotalSets int     `json:"totalSets"`
}

type LastSet struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
}

type Suggestion struct {
	Type            SuggestionType `json:"type"`
	SuggestedWeight float64        `json:"suggestedWeight"`
	SuggestedReps   float64        `json:"suggestedReps"`
	Reason          string         `json:"reason"`
	Confidence      Confidence     `json:"confidence"`
	Stats           Stats          `json:"stats"`
	LastSet         LastSet        `json:"lastSet"`
}

type repClass int

const (
	repsLow repClass = iota
	repsMedium
	repsHigh
)

func classifyReps(reps float64) repClass {
	switch {
	case reps >= highRepsThreshold:
		return repsHigh
	case reps >= lowRepsThreshold:
		return repsMedium
	default:
		return repsLow
	}
}

// Suggest proposes the next weight and rep target for an exercise from its
// set history. History order does not matter, sets are ordered by CreatedAt,
// most recent first. Returns nil when there is no normal set with both weight
// and reps. An invalid config falls back to the default increment.
func Suggest(history []sets.SetRecord, cfg Config) *Suggestion {
	if cfg.Validate() != nil {
		cfg = Config{}
	}
	increment := cfg.increment()

	window := recentNormalSets(history, windowSize)
	if len(window) == 0 {
		return nil
	}

	last := LastSet{Weight: *window[0].Weight, Reps: *window[0].Reps}
	suggestion := decide(window, last, increment)
	suggestion.Stats = computeStats(window)
	suggestion.LastSet = last

	return suggestion
}

func decide(window []sets.SetRecord, last LastSet, increment float64) *Suggestion {
	switch class := classifyReps(last.Reps); {
	case class == repsHigh && allHighReps(window, consecutiveHigh):
		return &Suggestion{
			Type:            SuggestionIncreaseWeight,
			SuggestedWeight: last.Weight + increment,
			SuggestedReps:   resetReps,
			Reason: fmt.Sprintf(
				"You hit 12+ reps consecutively. Time to increase the weight to %s kg.",
				formatWeight(last.Weight+increment),
			),
			Confidence: ConfidenceHigh,
		}
	case class == repsLow && last.Reps < tooFewReps:
		suggested := math.Max(last.Weight-increment, increment)
		return &Suggestion{
			Type:            SuggestionDecreaseWeight,
			SuggestedWeight: suggested,
			SuggestedReps:   resetReps,
			Reason: fmt.Sprintf(
				"Only %s reps last time. Drop to %s kg and aim for 8 clean reps.",
				formatWeight(last.Reps), formatWeight(suggested),
			),
			Confidence: ConfidenceMedium,
		}
	case class == repsMedium && isProgressing(window):
		return &Suggestion{
			Type:            SuggestionMaintain,
			SuggestedWeight: last.Weight,
			SuggestedReps:   last.Reps + 1,
			Reason: fmt.Sprintf(
				"You are progressing well. Keep %s kg and go for %s reps.",
				formatWeight(last.Weight), formatWeight(last.Reps+1),
			),
			Confidence: ConfidenceHigh,
		}
	default:
		return &Suggestion{
			Type:            SuggestionMaintain,
			SuggestedWeight: last.Weight,
			SuggestedReps:   last.Reps,
			Reason:          "Keep the same weight and reps to accumulate more quality volume.",
			Confidence:      ConfidenceMedium,
		}
	}
}

// recentNormalSets returns at most limit eligible normal sets, most recent
// first. Sets with non-finite numbers are not eligible.
func recentNormalSets(history []sets.SetRecord, limit int) []sets.SetRecord {
	eligible := make([]sets.SetRecord, 0, len(history))
	for _, s := range history {
		if !s.IsEligibleNormal() || !isFinite(*s.Weight) || !isFinite(*s.Reps) {
			continue
		}
		eligible = append(eligible, s)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].CreatedAt.After(eligible[j].CreatedAt)
	})

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible
}

// allHighReps checks the n most recent sets. A window shorter than n only
// needs every present set to qualify.
func allHighReps(window []sets.SetRecord, n int) bool {
	if len(window) > n {
		window = window[:n]
	}
	for _, s := range window {
		if *s.Reps < highRepsThreshold {
			return false
		}
	}
	return true
}

func isProgressing(window []sets.SetRecord) bool {
	if len(window) < minProgressingSet {
		return false
	}
	return *window[0].Weight >= *window[len(window)-1].Weight
}

func computeStats(window []sets.SetRecord) Stats {
	var stats Stats
	var sumWeight, sumReps float64
	for _, s := range window {
		sumWeight += *s.Weight
		sumReps += *s.Reps
		stats.MaxWeight = math.Max(stats.MaxWeight, *s.Weight)
		stats.MaxReps = math.Max(stats.MaxReps, *s.Reps)
	}
	stats.TotalSets = len(window)
	stats.AvgWeight = round1(sumWeight / float64(len(window)))
	stats.AvgReps = round1(sumReps / float64(len(window)))
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatWeight(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%g", round1(v))
}
