package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Upsert(ctx context.Context, workout WorkoutLog) error
	Get(ctx context.Context, userID, date string) (*WorkoutLog, error)
	List(ctx context.Context, userID string) ([]WorkoutLog, error)
}

type Service struct {
	repo workoutsRepo
}

func NewService(repo workoutsRepo) *Service {
	return &Service{
		repo: repo,
	}
}

// Start opens the session of the day at belongs to. An already started
// session keeps its original start time.
func (s *Service) Start(ctx context.Context, userID string, at time.Time) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date := at.Format(DateLayout)
	span.SetAttributes(attribute.String("workout.date", date))

	workout, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, ErrWorkoutNotFound) {
			return nil, fmt.Errorf("get workout: %w", err)
		}
		workout = &WorkoutLog{
			UserID: userID,
			Date:   date,
		}
	}

	if workout.StartedAt != nil {
		log.Tracef("workout [%s] of user [%s] already started", date, userID)
		return workout, nil
	}

	workout.StartedAt = &at
	if err := s.repo.Upsert(ctx, *workout); err != nil {
		return nil, fmt.Errorf("upsert workout: %w", err)
	}

	return workout, nil
}

// Finish closes the session of the day at belongs to.
func (s *Service) Finish(ctx context.Context, userID string, at time.Time) (_ *WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	date := at.Format(DateLayout)
	span.SetAttributes(attribute.String("workout.date", date))

	workout, err := s.repo.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			return nil, ErrWorkoutNotStarted
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}
	if workout.StartedAt == nil {
		return nil, ErrWorkoutNotStarted
	}

	workout.EndedAt = &at
	if err := s.repo.Upsert(ctx, *workout); err != nil {
		return nil, fmt.Errorf("upsert workout: %w", err)
	}

	return workout, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]WorkoutLog, error) {
	return s.repo.List(ctx, userID)
}
