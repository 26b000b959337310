package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type WorkoutRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewWorkoutRepository(db *sqlx.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db, now: time.Now}
}

func (r *WorkoutRepository) Find(ctx context.Context, workoutID int64) (ports.WorkoutRows, error) {
	rows, err := loadWorkoutRows(ctx, r.db, "WHERE w.id = ?", workoutID)
	if err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("find workout: %w", err)
	}
	return rows, nil
}

// AssignTemplate copies the template into a new workout for the client.
func (r *WorkoutRepository) AssignTemplate(ctx context.Context, clientID, templateID int64) (ports.WorkoutRows, error) {
	var rows ports.WorkoutRows
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var tpl domain.WorkoutTemplate
		err := tx.GetContext(ctx, &tpl, tx.Rebind(
			`SELECT id, name, description FROM workout_templates WHERE id = ?`), templateID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrTemplateNotFound
		}
		if err != nil {
			return fmt.Errorf("select template: %w", err)
		}

		workoutID, err := insertID(ctx, tx,
			`INSERT INTO client_workouts (client_id, template_id, name, description, created_at)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`,
			clientID, tpl.ID, tpl.Name, tpl.Description, r.now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert workout: %w", err)
		}

		var exercises []domain.TemplateExercise
		if err := sqlx.SelectContext(ctx, tx, &exercises, tx.Rebind(
			`SELECT id, template_id, name, muscle_group, difficulty_level, position
			   FROM template_exercises
			  WHERE template_id = ?
			  ORDER BY position, id`), templateID); err != nil {
			return fmt.Errorf("select template exercises: %w", err)
		}

		for _, ex := range exercises {
			exerciseID, err := insertID(ctx, tx,
				`INSERT INTO client_exercises (client_workout_id, template_exercise_id, name, muscle_group, difficulty_level, position)
				 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
				workoutID, ex.ID, ex.Name, ex.MuscleGroup, ex.DifficultyLevel, ex.Position,
			)
			if err != nil {
				return fmt.Errorf("insert workout exercise: %w", err)
			}
			if _, err := tx.ExecContext(ctx, tx.Rebind(
				`INSERT INTO client_sets (client_exercise_id, set_number, weight, reps)
				 SELECT ?, set_number, weight, reps
				   FROM template_sets
				  WHERE exercise_id = ?
				  ORDER BY set_number, id`), exerciseID, ex.ID); err != nil {
				return fmt.Errorf("copy template sets: %w", err)
			}
		}

		rows, err = loadWorkoutRows(ctx, tx, "WHERE w.id = ?", workoutID)
		return err
	})
	if err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("assign template: %w", err)
	}
	return rows, nil
}

// Replace overwrites the workout fields and swaps its whole exercise tree.
// Sets go with their exercises through ON DELETE CASCADE.
func (r *WorkoutRepository) Replace(ctx context.Context, workoutID int64, in ports.UpdateWorkoutInput) (ports.WorkoutRows, error) {
	var rows ports.WorkoutRows
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(
			`UPDATE client_workouts SET name = ?, description = ? WHERE id = ?`),
			in.Name, in.Description, workoutID)
		if err != nil {
			return fmt.Errorf("update workout: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("update workout: %w", err)
		} else if n == 0 {
			return domain.ErrWorkoutNotFound
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(
			`DELETE FROM client_exercises WHERE client_workout_id = ?`), workoutID); err != nil {
			return fmt.Errorf("delete workout exercises: %w", err)
		}

		for _, ex := range in.Exercises {
			exerciseID, err := insertID(ctx, tx,
				`INSERT INTO client_exercises (client_workout_id, name, muscle_group, difficulty_level, position)
				 VALUES (?, ?, ?, ?, ?) RETURNING id`,
				workoutID, ex.Name, ex.MuscleGroup, ex.DifficultyLevel, ex.Position,
			)
			if err != nil {
				return fmt.Errorf("insert workout exercise: %w", err)
			}
			for _, set := range ex.Sets {
				if _, err := tx.ExecContext(ctx, tx.Rebind(
					`INSERT INTO client_sets (client_exercise_id, set_number, weight, reps) VALUES (?, ?, ?, ?)`),
					exerciseID, set.SetNumber, set.Weight, set.Reps,
				); err != nil {
					return fmt.Errorf("insert workout set: %w", err)
				}
			}
		}

		rows, err = loadWorkoutRows(ctx, tx, "WHERE w.id = ?", workoutID)
		return err
	})
	if err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("replace workout: %w", err)
	}
	return rows, nil
}

// loadWorkoutRows fetches workouts (aliased w) selected by scope, which is
// appended after the FROM clause and may add joins, plus their exercises
// and sets.
func loadWorkoutRows(ctx context.Context, q sqlx.ExtContext, scope string, args ...any) (ports.WorkoutRows, error) {
	var rows ports.WorkoutRows

	if err := sqlx.SelectContext(ctx, q, &rows.Workouts, q.Rebind(
		`SELECT w.id, w.client_id, w.template_id, w.name, w.description, w.created_at
		   FROM client_workouts w `+scope+`
		  ORDER BY w.created_at DESC, w.id DESC`), args...); err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("select workouts: %w", err)
	}
	if len(rows.Workouts) == 0 {
		return rows, nil
	}

	if err := sqlx.SelectContext(ctx, q, &rows.Exercises, q.Rebind(
		`SELECT x.id, x.client_workout_id, x.template_exercise_id, x.name, x.muscle_group, x.difficulty_level, x.position
		   FROM client_exercises x
		   JOIN client_workouts w ON w.id = x.client_workout_id `+scope+`
		  ORDER BY x.position, x.id`), args...); err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("select workout exercises: %w", err)
	}

	if err := sqlx.SelectContext(ctx, q, &rows.Sets, q.Rebind(
		`SELECT s.id, s.client_exercise_id, s.set_number, s.weight, s.reps
		   FROM client_sets s
		   JOIN client_exercises x ON x.id = s.client_exercise_id
		   JOIN client_workouts w ON w.id = x.client_workout_id `+scope+`
		  ORDER BY s.set_number, s.id`), args...); err != nil {
		return ports.WorkoutRows{}, fmt.Errorf("select workout sets: %w", err)
	}
	return rows, nil
}

var _ ports.WorkoutRepository = (*WorkoutRepository)(nil)
