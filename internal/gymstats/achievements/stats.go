package achievements

import (
	"math"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/streaks"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
)

const (
	earlyWorkoutBeforeHour = 6
	lateWorkoutFromHour    = 22
)

// History is everything stats are computed from.
type History struct {
	Workouts []workouts.WorkoutLog
	Sets     []sets.SetRecord
	PRs      []sets.PRRecord
}

// WorkoutDates returns the distinct dates the user trained on, either by
// opening a session or by logging a set.
func (h History) WorkoutDates() []string {
	seen := map[string]bool{}
	var dates []string
	add := func(date string) {
		if date == "" || seen[date] {
			return
		}
		seen[date] = true
		dates = append(dates, date)
	}

	for _, w := range h.Workouts {
		add(w.Date)
	}
	for _, s := range h.Sets {
		add(s.WorkoutDate)
	}
	return dates
}

// BuildStats computes every requirement type from the history. Session
// start hours and streak anchors use now's location.
func BuildStats(h History, now time.Time) Stats {
	dates := h.WorkoutDates()
	streakSummary := streaks.Compute(dates, now)

	stats := Stats{
		RequirementTotalWorkouts:      float64(len(dates)),
		RequirementTotalSets:          float64(len(h.Sets)),
		RequirementTotalPRs:           float64(len(h.PRs)),
		RequirementTotalVolume:        totalVolume(h.Sets),
		RequirementEarlyWorkout:       0,
		RequirementLateWorkout:        0,
		RequirementWorkoutDuration:    0,
		RequirementBodyPartsInWorkout: float64(maxMuscleGroupsPerDate(h.Sets)),
		RequirementStreak:             float64(streakSummary.Daily),
		RequirementWeekendStreak:      float64(streakSummary.Weekend),
		RequirementWeeklyWorkouts:     float64(streakSummary.Weekly),
	}

	for _, w := range h.Workouts {
		if w.StartedAt != nil {
			hour := w.StartedAt.In(now.Location()).Hour()
			if hour < earlyWorkoutBeforeHour {
				stats[RequirementEarlyWorkout]++
			}
			if hour >= lateWorkoutFromHour {
				stats[RequirementLateWorkout]++
			}
		}

		minutes := w.Duration().Minutes()
		stats[RequirementWorkoutDuration] = math.Max(stats[RequirementWorkoutDuration], minutes)
	}

	return stats
}

func totalVolume(setRecords []sets.SetRecord) float64 {
	var volume float64
	for _, s := range setRecords {
		v := s.Volume()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		volume += v
	}
	return volume
}

func maxMuscleGroupsPerDate(setRecords []sets.SetRecord) int {
	groupsByDate := map[string]map[string]bool{}
	for _, s := range setRecords {
		if s.MuscleGroup == "" || s.WorkoutDate == "" {
			continue
		}
		if groupsByDate[s.WorkoutDate] == nil {
			groupsByDate[s.WorkoutDate] = map[string]bool{}
		}
		groupsByDate[s.WorkoutDate][s.MuscleGroup] = true
	}

	maxGroups := 0
	for _, groups := range groupsByDate {
		if len(groups) > maxGroups {
			maxGroups = len(groups)
		}
	}
	return maxGroups
}
