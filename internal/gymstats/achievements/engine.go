package achievements

import (
	"math"
	"sort"
)

// Stats maps a requirement type to the user's current value for it.
type Stats map[RequirementType]float64

type UserState struct {
	UnlockedIDs []string `json:"unlockedIds"`
	Stats       Stats    `json:"stats"`
}

type Ranked struct {
	Definition Definition `json:"achievement"`
	Progress   float64    `json:"progress"`
}

// CalculateProgress returns the completion percentage in [0, 100]. A missing
// or non-finite stat counts as 0.
func CalculateProgress(def Definition, stats Stats) float64 {
	if def.Requirement.Value <= 0 {
		return 100
	}

	value := stats[def.Requirement.Type]
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return 0
	}

	return math.Min(value/def.Requirement.Value, 1) * 100
}

// Evaluate returns ids of achievements reached by stats that are not
// unlocked yet, in catalog order. The first one is the one to celebrate.
func Evaluate(stats Stats, unlockedIDs []string) []string {
	unlocked := idSet(unlockedIDs)

	var newlyUnlocked []string
	for _, def := range catalog {
		if unlocked[def.ID] {
			continue
		}
		if CalculateProgress(def, stats) >= 100 {
			newlyUnlocked = append(newlyUnlocked, def.ID)
		}
	}
	return newlyUnlocked
}

// TotalPoints sums points of the unlocked achievements. Unknown ids are
// ignored and duplicates are counted once.
func TotalPoints(unlockedIDs []string) int {
	total := 0
	for id := range idSet(unlockedIDs) {
		if def, ok := Lookup(id); ok {
			total += def.Points
		}
	}
	return total
}

// RankNext returns up to limit locked achievements closest to being
// unlocked. Ties keep catalog order.
func RankNext(unlockedIDs []string, stats Stats, limit int) []Ranked {
	if limit <= 0 {
		return []Ranked{}
	}

	unlocked := idSet(unlockedIDs)
	ranked := make([]Ranked, 0, len(catalog))
	for _, def := range catalog {
		if unlocked[def.ID] {
			continue
		}
		ranked = append(ranked, Ranked{
			Definition: def,
			Progress:   CalculateProgress(def, stats),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Progress > ranked[j].Progress
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
