package sets

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the layout of workout (calendar) dates.
const DateLayout = "2006-01-02"

var (
	ErrInvalidSet  = errors.New("invalid set")
	ErrSetNotFound = errors.New("set not found")
)

// SetType can be one of:
//   - normal
//   - drop_set
type SetType string

const (
	SetTypeNormal  SetType = "normal"
	SetTypeDropSet SetType = "drop_set"
)

func (st SetType) String() string {
	return string(st)
}

func (st SetType) IsValid() bool {
	switch st {
	case SetTypeNormal, SetTypeDropSet:
		return true
	default:
		return false
	}
}

// Segment is one descending-weight part of a drop set.
type Segment struct {
	Weight float64 `json:"weight"`
	Reps   float64 `json:"reps"`
}

// SetRecord is one completed exercise set. A normal set carries Weight and
// Reps, a drop set carries Segments instead.
type SetRecord struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"userId"`
	ExerciseID  string    `json:"exerciseId"`
	MuscleGroup string    `json:"muscleGroup"`
	SetType     SetType   `json:"setType"`
	Weight      *float64  `json:"weight,omitempty"`
	Reps        *float64  `json:"reps,omitempty"`
	Segments    []Segment `json:"segments,omitempty"`
	WorkoutDate string    `json:"workoutDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewNormalSet(exerciseID string, weight, reps float64, createdAt time.Time) SetRecord {
	return SetRecord{
		ExerciseID: exerciseID,
		SetType:    SetTypeNormal,
		Weight:     &weight,
		Reps:       &reps,
		CreatedAt:  createdAt,
	}
}

func NewDropSet(exerciseID string, segments []Segment, createdAt time.Time) SetRecord {
	return SetRecord{
		ExerciseID: exerciseID,
		SetType:    SetTypeDropSet,
		Segments:   segments,
		CreatedAt:  createdAt,
	}
}

// IsEligibleNormal reports whether the set is a normal set with both weight
// and reps present.
func (s SetRecord) IsEligibleNormal() bool {
	return s.SetType == SetTypeNormal && s.Weight != nil && s.Reps != nil
}

// Validate checks the shape invariant of the set type and rejects negative
// or non-finite numbers.
func (s SetRecord) Validate() error {
	if s.ExerciseID == "" {
		return fmt.Errorf("%w: exercise id empty", ErrInvalidSet)
	}

	switch s.SetType {
	case SetTypeNormal:
		if s.Weight == nil || s.Reps == nil {
			return fmt.Errorf("%w: normal set needs weight and reps", ErrInvalidSet)
		}
		if len(s.Segments) > 0 {
			return fmt.Errorf("%w: normal set cannot have segments", ErrInvalidSet)
		}
		if err := validateNumbers(*s.Weight, *s.Reps); err != nil {
			return err
		}
	case SetTypeDropSet:
		if len(s.Segments) == 0 {
			return fmt.Errorf("%w: drop set needs at least one segment", ErrInvalidSet)
		}
		if s.Weight != nil || s.Reps != nil {
			return fmt.Errorf("%w: drop set cannot have weight or reps", ErrInvalidSet)
		}
		for _, seg := range s.Segments {
			if err := validateNumbers(seg.Weight, seg.Reps); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown set type [%s]", ErrInvalidSet, s.SetType)
	}

	if s.WorkoutDate != "" {
		if _, err := time.Parse(DateLayout, s.WorkoutDate); err != nil {
			return fmt.Errorf("%w: workout date [%s] not in YYYY-MM-DD format", ErrInvalidSet, s.WorkoutDate)
		}
	}

	return nil
}

func validateNumbers(weight, reps float64) error {
	for _, v := range []float64{weight, reps} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite number", ErrInvalidSet)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative number", ErrInvalidSet)
		}
	}
	return nil
}

// Volume is weight x reps; for drop sets every segment is summed.
func (s SetRecord) Volume() float64 {
	switch s.SetType {
	case SetTypeNormal:
		if s.Weight == nil || s.Reps == nil {
			return 0
		}
		return *s.Weight * *s.Reps
	case SetTypeDropSet:
		var v float64
		for _, seg := range s.Segments {
			v += seg.Weight * seg.Reps
		}
		return v
	default:
		return 0
	}
}

// TopWeight is the weight of a normal set, or the heaviest segment of a drop set.
func (s SetRecord) TopWeight() float64 {
	if s.SetType == SetTypeNormal {
		if s.Weight == nil {
			return 0
		}
		return *s.Weight
	}
	var top float64
	for _, seg := range s.Segments {
		top = math.Max(top, seg.Weight)
	}
	return top
}

// PRRecord is a personal record event for an exercise.
type PRRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"userId"`
	ExerciseID string    `json:"exerciseId"`
	Weight     float64   `json:"weight"`
	AchievedAt time.Time `json:"achievedAt"`
}
