package achievements

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/streaks"
	"github.com/2beens/liftlog/internal/gymstats/workouts"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=achievements_test

type setsSource interface {
	ListAll(ctx context.Context, userID string) ([]sets.SetRecord, error)
	ListPRs(ctx context.Context, userID string) ([]sets.PRRecord, error)
}

type workoutsSource interface {
	List(ctx context.Context, userID string) ([]workouts.WorkoutLog, error)
}

type EvaluationResult struct {
	NewlyUnlocked []string    `json:"newlyUnlocked"`
	Celebrate     *Definition `json:"celebrate"`
	UnlockedIDs   []string    `json:"unlockedIds"`
	TotalPoints   int         `json:"totalPoints"`
	Stats         Stats       `json:"stats"`
}

type Status struct {
	Definition Definition `json:"achievement"`
	Progress   float64    `json:"progress"`
	Unlocked   bool       `json:"unlocked"`
}

type Overview struct {
	Achievements  []Status `json:"achievements"`
	UnlockedCount int      `json:"unlockedCount"`
	TotalPoints   int      `json:"totalPoints"`
	Stats         Stats    `json:"stats"`
}

type Service struct {
	sets           setsSource
	workouts       workoutsSource
	unlockStore    *UnlockStore
	metricsManager *metrics.Manager
}

func NewService(
	setsSrc setsSource,
	workoutsSrc workoutsSource,
	unlockStore *UnlockStore,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		sets:           setsSrc,
		workouts:       workoutsSrc,
		unlockStore:    unlockStore,
		metricsManager: metricsManager,
	}
}

func (s *Service) LoadHistory(ctx context.Context, userID string) (History, error) {
	workoutLogs, err := s.workouts.List(ctx, userID)
	if err != nil {
		return History{}, fmt.Errorf("list workouts: %w", err)
	}
	setRecords, err := s.sets.ListAll(ctx, userID)
	if err != nil {
		return History{}, fmt.Errorf("list sets: %w", err)
	}
	prs, err := s.sets.ListPRs(ctx, userID)
	if err != nil {
		return History{}, fmt.Errorf("list personal records: %w", err)
	}

	return History{
		Workouts: workoutLogs,
		Sets:     setRecords,
		PRs:      prs,
	}, nil
}

func (s *Service) state(ctx context.Context, userID string, now time.Time) (*UserState, error) {
	history, err := s.LoadHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	unlocked, err := s.unlockStore.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &UserState{
		UnlockedIDs: unlocked,
		Stats:       BuildStats(history, now),
	}, nil
}

// Evaluate recomputes the user's stats, unlocks every newly reached
// achievement and persists them.
func (s *Service) Evaluate(ctx context.Context, userID string, now time.Time) (_ *EvaluationResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.evaluate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	state, err := s.state(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		NewlyUnlocked: Evaluate(state.Stats, state.UnlockedIDs),
		UnlockedIDs:   state.UnlockedIDs,
		Stats:         state.Stats,
	}
	span.SetAttributes(attribute.Int("achievements.new", len(result.NewlyUnlocked)))

	if len(result.NewlyUnlocked) > 0 {
		result.UnlockedIDs, err = s.unlockStore.Save(ctx, userID, result.NewlyUnlocked)
		if err != nil {
			return nil, err
		}

		celebrate, _ := Lookup(result.NewlyUnlocked[0])
		result.Celebrate = &celebrate

		for _, id := range result.NewlyUnlocked {
			s.metricsManager.CounterAchievementsUnlocked.WithLabelValues(id).Inc()
		}
		log.Debugf("user [%s] unlocked achievements: %v", userID, result.NewlyUnlocked)
	} else {
		result.NewlyUnlocked = []string{}
	}

	result.TotalPoints = TotalPoints(result.UnlockedIDs)
	return result, nil
}

// Overview lists the whole catalog with the user's progress. Unlocked
// achievements stay at 100 even if the stat dropped since.
func (s *Service) Overview(ctx context.Context, userID string, now time.Time) (*Overview, error) {
	state, err := s.state(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	unlocked := idSet(state.UnlockedIDs)
	overview := &Overview{
		Achievements: make([]Status, 0, len(catalog)),
		TotalPoints:  TotalPoints(state.UnlockedIDs),
		Stats:        state.Stats,
	}
	for _, def := range catalog {
		status := Status{
			Definition: def,
			Progress:   CalculateProgress(def, state.Stats),
			Unlocked:   unlocked[def.ID],
		}
		if status.Unlocked {
			status.Progress = 100
			overview.UnlockedCount++
		}
		overview.Achievements = append(overview.Achievements, status)
	}

	return overview, nil
}

func (s *Service) Next(ctx context.Context, userID string, now time.Time, limit int) ([]Ranked, error) {
	state, err := s.state(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return RankNext(state.UnlockedIDs, state.Stats, limit), nil
}

func (s *Service) Streaks(ctx context.Context, userID string, now time.Time) (streaks.Summary, error) {
	history, err := s.LoadHistory(ctx, userID)
	if err != nil {
		return streaks.Summary{}, err
	}
	return streaks.Compute(history.WorkoutDates(), now), nil
}
