package sets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/kvstore"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=sets_test

type setsRepo interface {
	Add(ctx context.Context, set SetRecord, pr *PRRecord) error
	ListRecent(ctx context.Context, userID, exerciseID string, limit int) ([]SetRecord, error)
	ListRecentNormal(ctx context.Context, userID, exerciseID string, limit int) ([]SetRecord, error)
	ListAll(ctx context.Context, userID string) ([]SetRecord, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
	MaxWeight(ctx context.Context, userID, exerciseID string) (weight float64, found bool, err error)
	ListPRs(ctx context.Context, userID string) ([]PRRecord, error)
}

const (
	recentExercisesLimit = 10
	maxListLimit         = 500
)

type AddSetResult struct {
	Set            SetRecord `json:"set"`
	PersonalRecord *PRRecord `json:"personalRecord,omitempty"`
}

type Service struct {
	repo           setsRepo
	store          kvstore.Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(repo setsRepo, store kvstore.Store, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:           repo,
		store:          store,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

// AddSet stores a new set and creates a personal record when its top weight
// strictly exceeds the previous best for the exercise.
func (s *Service) AddSet(ctx context.Context, set SetRecord) (_ *AddSetResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if set.UserID == "" {
		return nil, fmt.Errorf("%w: user id empty", ErrInvalidSet)
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	set.ID = uuid.New()
	if set.CreatedAt.IsZero() {
		set.CreatedAt = s.now()
	}
	if set.WorkoutDate == "" {
		set.WorkoutDate = set.CreatedAt.Format(DateLayout)
	}
	span.SetAttributes(
		attribute.String("user.id", set.UserID),
		attribute.String("exercise.id", set.ExerciseID),
		attribute.String("set.type", set.SetType.String()),
	)

	prevMax, found, err := s.repo.MaxWeight(ctx, set.UserID, set.ExerciseID)
	if err != nil {
		return nil, fmt.Errorf("get max weight: %w", err)
	}

	var pr *PRRecord
	topWeight := set.TopWeight()
	if topWeight > 0 && (!found || topWeight > prevMax) {
		pr = &PRRecord{
			ID:         uuid.New(),
			UserID:     set.UserID,
			ExerciseID: set.ExerciseID,
			Weight:     topWeight,
			AchievedAt: set.CreatedAt,
		}
	}

	// set and personal record are committed together
	if err := s.repo.Add(ctx, set, pr); err != nil {
		return nil, fmt.Errorf("add set: %w", err)
	}

	s.metricsManager.CounterSetsLogged.WithLabelValues(set.SetType.String()).Inc()
	if pr != nil {
		s.metricsManager.CounterPersonalRecords.Inc()
		log.Debugf("new personal record for user [%s], exercise [%s]: %.2f", pr.UserID, pr.ExerciseID, pr.Weight)
	}

	if err := s.rememberExercise(ctx, set.UserID, set.ExerciseID); err != nil {
		// the set is stored, the recent list is only a convenience
		log.Errorf("remember recent exercise [%s] for user [%s]: %s", set.ExerciseID, set.UserID, err)
	}

	return &AddSetResult{Set: set, PersonalRecord: pr}, nil
}

// ListRecent returns up to limit sets of the exercise, most recent first.
func (s *Service) ListRecent(ctx context.Context, userID, exerciseID string, limit int) ([]SetRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecent(ctx, userID, exerciseID, limit)
}

// ListRecentNormal returns up to limit normal sets of the exercise that carry
// weight and reps, most recent first. Progression suggestions read this window.
func (s *Service) ListRecentNormal(ctx context.Context, userID, exerciseID string, limit int) ([]SetRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.ListRecentNormal(ctx, userID, exerciseID, limit)
}

func (s *Service) ListAll(ctx context.Context, userID string) ([]SetRecord, error) {
	return s.repo.ListAll(ctx, userID)
}

func (s *Service) ListPRs(ctx context.Context, userID string) ([]PRRecord, error) {
	return s.repo.ListPRs(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func recentExercisesKey(userID string) string {
	return "recent_exercises:" + userID
}

// RecentExercises returns the ids of the exercises the user logged most recently.
func (s *Service) RecentExercises(ctx context.Context, userID string) ([]string, error) {
	raw, err := s.store.Get(ctx, recentExercisesKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var recent []string
	if err := json.Unmarshal(raw, &recent); err != nil {
		return nil, fmt.Errorf("unmarshal recent exercises: %w", err)
	}
	return recent, nil
}

func (s *Service) rememberExercise(ctx context.Context, userID, exerciseID string) error {
	recent, err := s.RecentExercises(ctx, userID)
	if err != nil {
		return err
	}

	updated := make([]string, 0, recentExercisesLimit)
	updated = append(updated, exerciseID)
	for _, id := range recent {
		if len(updated) == recentExercisesLimit {
			break
		}
		if id != exerciseID {
			updated = append(updated, id)
		}
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, recentExercisesKey(userID), raw, 0)
}
