package workouts

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrWorkoutNotStarted = errors.New("workout not started")
)

// WorkoutLog is one calendar day of training for a user.
type WorkoutLog struct {
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// Duration of the session, zero unless both bounds are set and ordered.
func (w WorkoutLog) Duration() time.Duration {
	if w.StartedAt == nil || w.EndedAt == nil || w.EndedAt.Before(*w.StartedAt) {
		return 0
	}
	return w.EndedAt.Sub(*w.StartedAt)
}
