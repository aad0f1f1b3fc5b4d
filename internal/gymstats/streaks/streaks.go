// Package streaks computes workout streaks over calendar dates.
//
// Dates are "YYYY-MM-DD" strings in the user's local calendar. All date math
// runs on day numbers (days since 1970-01-01 of the civil date), so there are
// no time zone or DST artifacts. Unparseable dates are skipped.
package streaks

import (
	"sort"
	"time"
)

const (
	dateLayout = "2006-01-02"
	secsPerDay = 24 * 60 * 60
	weekDays   = 7
)

type Summary struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Weekend int `json:"weekend"`
}

// Compute returns all streaks, anchored at the calendar date of now.
func Compute(workoutDates []string, now time.Time) Summary {
	return Summary{
		Daily:   Daily(workoutDates, now),
		Weekly:  WeeklyCount(workoutDates, now),
		Weekend: Weekend(workoutDates),
	}
}

// Daily counts consecutive training days ending today, or yesterday when
// there was no workout today yet. Zero when neither day has a workout.
func Daily(workoutDates []string, today time.Time) int {
	days := daySet(workoutDates)
	current := civilDay(today)

	switch {
	case days[current]:
	case days[current-1]:
		current--
	default:
		return 0
	}

	streak := 0
	for days[current] {
		streak++
		current--
	}
	return streak
}

// WeeklyCount counts distinct workout dates in the 7 days ending at reference,
// both ends inclusive.
func WeeklyCount(workoutDates []string, reference time.Time) int {
	end := civilDay(reference)
	start := end - (weekDays - 1)

	count := 0
	for day := range daySet(workoutDates) {
		if day >= start && day <= end {
			count++
		}
	}
	return count
}

// Weekend counts consecutive trained weekends, starting at the most recent
// one. A weekend is trained when there is a workout on its Saturday or
// Sunday, and it is keyed by the Monday that starts its week.
func Weekend(workoutDates []string) int {
	keySet := map[int64]bool{}
	for day := range daySet(workoutDates) {
		switch weekday(day) {
		case time.Saturday, time.Sunday:
			keySet[weekStart(day)] = true
		}
	}
	if len(keySet) == 0 {
		return 0
	}

	keys := make([]int64, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] > keys[j]
	})

	streak := 1
	for i := 1; i < len(keys); i++ {
		if keys[i-1]-keys[i] != weekDays {
			break
		}
		streak++
	}
	return streak
}

// ParseDay converts a "YYYY-MM-DD" date to its day number.
func ParseDay(date string) (int64, bool) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, false
	}
	return t.Unix() / secsPerDay, true
}

func daySet(workoutDates []string) map[int64]bool {
	days := make(map[int64]bool, len(workoutDates))
	for _, date := range workoutDates {
		if day, ok := ParseDay(date); ok {
			days[day] = true
		}
	}
	return days
}

// civilDay is the day number of t's calendar date in t's own location.
func civilDay(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / secsPerDay
}

func weekday(day int64) time.Weekday {
	return time.Unix(day*secsPerDay, 0).UTC().Weekday()
}

// weekStart is the day number of the Monday starting day's week.
func weekStart(day int64) int64 {
	offset := (int64(weekday(day)) + 6) % weekDays
	return day - offset
}
