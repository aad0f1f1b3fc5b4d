package workouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Upsert(ctx context.Context, workout WorkoutLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_log (user_id, date, started_at, ended_at)
				VALUES ($1, $2::date, $3, $4)
			ON CONFLICT (user_id, date) DO UPDATE
				SET started_at = EXCLUDED.started_at, ended_at = EXCLUDED.ended_at;`,
		workout.UserID, workout.Date, workout.StartedAt, workout.EndedAt,
	)
	return err
}

func (r *Repo) Get(ctx context.Context, userID, date string) (*WorkoutLog, error) {
	workout := WorkoutLog{}
	err := r.db.QueryRow(
		ctx,
		`
			SELECT user_id, to_char(date, 'YYYY-MM-DD'), started_at, ended_at
			FROM workout_log
			WHERE user_id = $1 AND date = $2::date;`,
		userID, date,
	).Scan(&workout.UserID, &workout.Date, &workout.StartedAt, &workout.EndedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return &workout, nil
}

func (r *Repo) List(ctx context.Context, userID string) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT user_id, to_char(date, 'YYYY-MM-DD'), started_at, ended_at
			FROM workout_log
			WHERE user_id = $1
			ORDER BY date DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []WorkoutLog
	for rows.Next() {
		var w WorkoutLog
		if err := rows.Scan(&w.UserID, &w.Date, &w.StartedAt, &w.EndedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}
