package sets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const setColumns = `id, user_id, exercise_id, muscle_group, set_type, weight, reps, segments,
				to_char(workout_date, 'YYYY-MM-DD'), created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add stores the set and, when pr is not nil, its personal record in one
// transaction. Either both rows are committed or none.
func (r *Repo) Add(ctx context.Context, set SetRecord, pr *PRRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Bool("personal_record", pr != nil))

	var segmentsJson []byte
	if len(set.Segments) > 0 {
		segmentsJson, err = json.Marshal(set.Segments)
		if err != nil {
			return fmt.Errorf("marshal segments: %w", err)
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO exercise_set
				(id, user_id, exercise_id, muscle_group, set_type, weight, reps, segments, workout_date, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10);`,
		set.ID, set.UserID, set.ExerciseID, set.MuscleGroup, set.SetType.String(),
		set.Weight, set.Reps, segmentsJson, set.WorkoutDate, set.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert set: %w", err)
	}

	if pr == nil {
		return nil
	}

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO personal_record (id, user_id, exercise_id, weight, achieved_at)
				VALUES ($1, $2, $3, $4, $5);`,
		pr.ID, pr.UserID, pr.ExerciseID, pr.Weight, pr.AchievedAt,
	); err != nil {
		return fmt.Errorf("insert personal record: %w", err)
	}

	return nil
}

func (r *Repo) ListRecent(ctx context.Context, userID, exerciseID string, limit int) (_ []SetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_recent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM exercise_set
			WHERE user_id = $1 AND exercise_id = $2
			ORDER BY created_at DESC
			LIMIT $3;`,
		userID, exerciseID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

// ListRecentNormal returns up to limit normal sets with weight and reps, most
// recent first. Drop sets never take a slot of the window.
func (r *Repo) ListRecentNormal(ctx context.Context, userID, exerciseID string, limit int) (_ []SetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_recent_normal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM exercise_set
			WHERE user_id = $1 AND exercise_id = $2
				AND set_type = 'normal' AND weight IS NOT NULL AND reps IS NOT NULL
			ORDER BY created_at DESC
			LIMIT $3;`,
		userID, exerciseID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

func (r *Repo) ListAll(ctx context.Context, userID string) (_ []SetRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_all")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+setColumns+`
			FROM exercise_set
			WHERE user_id = $1
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

func (r *Repo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise_set WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

func (r *Repo) MaxWeight(ctx context.Context, userID, exerciseID string) (weight float64, found bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.max_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var maxWeight *float64
	if err := r.db.QueryRow(
		ctx,
		`SELECT MAX(weight) FROM personal_record WHERE user_id = $1 AND exercise_id = $2;`,
		userID, exerciseID,
	).Scan(&maxWeight); err != nil {
		return 0, false, err
	}

	if maxWeight == nil {
		return 0, false, nil
	}
	return *maxWeight, true, nil
}

func (r *Repo) ListPRs(ctx context.Context, userID string) (_ []PRRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.list_prs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, exercise_id, weight, achieved_at
			FROM personal_record
			WHERE user_id = $1
			ORDER BY achieved_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prs []PRRecord
	for rows.Next() {
		var pr PRRecord
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.ExerciseID, &pr.Weight, &pr.AchievedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		prs = append(prs, pr)
	}

	return prs, rows.Err()
}

func (r *Repo) rows2sets(rows pgx.Rows) ([]SetRecord, error) {
	var sets []SetRecord
	for rows.Next() {
		var (
			set          SetRecord
			setType      string
			segmentsJson []byte
		)
		if err := rows.Scan(
			&set.ID,
			&set.UserID,
			&set.ExerciseID,
			&set.MuscleGroup,
			&setType,
			&set.Weight,
			&set.Reps,
			&segmentsJson,
			&set.WorkoutDate,
			&set.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}

		set.SetType = SetType(setType)
		if len(segmentsJson) > 0 {
			if err := json.Unmarshal(segmentsJson, &set.Segments); err != nil {
				return nil, fmt.Errorf("unmarshal segments of set %s: %w", set.ID, err)
			}
		}

		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}
