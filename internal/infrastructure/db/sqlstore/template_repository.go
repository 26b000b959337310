package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type TemplateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db, now: time.Now}
}

func (r *TemplateRepository) ListForUser(ctx context.Context, userID int64) (ports.TemplateRows, error) {
	rows, err := loadTemplateRows(ctx, r.db, "t.user_id = ?", userID)
	if err != nil {
		return ports.TemplateRows{}, fmt.Errorf("list templates: %w", err)
	}
	return rows, nil
}

func (r *TemplateRepository) FindForUser(ctx context.Context, userID, templateID int64) (ports.TemplateRows, error) {
	rows, err := loadTemplateRows(ctx, r.db, "t.user_id = ? AND t.id = ?", userID, templateID)
	if err != nil {
		return ports.TemplateRows{}, fmt.Errorf("find template: %w", err)
	}
	return rows, nil
}

// Create inserts the template with its exercises and sets in one
// transaction and returns the stored rows.
func (r *TemplateRepository) Create(ctx context.Context, userID int64, in ports.CreateTemplateInput) (ports.TemplateRows, error) {
	var rows ports.TemplateRows
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		templateID, err := insertID(ctx, tx,
			`INSERT INTO workout_templates (user_id, name, description, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
			userID, in.Name, in.Description, r.now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert template: %w", err)
		}

		for _, ex := range in.Exercises {
			exerciseID, err := insertID(ctx, tx,
				`INSERT INTO template_exercises (template_id, name, muscle_group, difficulty_level, position, created_at)
				 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
				templateID, ex.Name, ex.MuscleGroup, ex.DifficultyLevel, ex.Position, r.now().UTC(),
			)
			if err != nil {
				return fmt.Errorf("insert template exercise: %w", err)
			}
			for _, set := range ex.Sets {
				if _, err := tx.ExecContext(ctx, tx.Rebind(
					`INSERT INTO template_sets (exercise_id, set_number, weight, reps) VALUES (?, ?, ?, ?)`),
					exerciseID, set.SetNumber, set.Weight, set.Reps,
				); err != nil {
					return fmt.Errorf("insert template set: %w", err)
				}
			}
		}

		rows, err = loadTemplateRows(ctx, tx, "t.id = ?", templateID)
		return err
	})
	if err != nil {
		return ports.TemplateRows{}, fmt.Errorf("create template: %w", err)
	}
	return rows, nil
}

// Delete removes the template. Exercises and sets cascade; client workouts
// copied from it keep their data with template_id nulled.
func (r *TemplateRepository) Delete(ctx context.Context, userID, templateID int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`DELETE FROM workout_templates WHERE id = ? AND user_id = ?`), templateID, userID)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

// loadTemplateRows fetches templates matching where (aliased t) plus all of
// their exercises and sets.
func loadTemplateRows(ctx context.Context, q sqlx.ExtContext, where string, args ...any) (ports.TemplateRows, error) {
	var rows ports.TemplateRows

	if err := sqlx.SelectContext(ctx, q, &rows.Templates, q.Rebind(
		`SELECT t.id, t.user_id, t.name, t.description, t.created_at
		   FROM workout_templates t
		  WHERE `+where+`
		  ORDER BY t.created_at DESC, t.id DESC`), args...); err != nil {
		return ports.TemplateRows{}, fmt.Errorf("select templates: %w", err)
	}
	if len(rows.Templates) == 0 {
		return rows, nil
	}

	if err := sqlx.SelectContext(ctx, q, &rows.Exercises, q.Rebind(
		`SELECT e.id, e.template_id, e.name, e.muscle_group, e.difficulty_level, e.position
		   FROM template_exercises e
		   JOIN workout_templates t ON t.id = e.template_id
		  WHERE `+where+`
		  ORDER BY e.position, e.id`), args...); err != nil {
		return ports.TemplateRows{}, fmt.Errorf("select template exercises: %w", err)
	}

	if err := sqlx.SelectContext(ctx, q, &rows.Sets, q.Rebind(
		`SELECT s.id, s.exercise_id, s.set_number, s.weight, s.reps
		   FROM template_sets s
		   JOIN template_exercises e ON e.id = s.exercise_id
		   JOIN workout_templates t ON t.id = e.template_id
		  WHERE `+where+`
		  ORDER BY s.set_number, s.id`), args...); err != nil {
		return ports.TemplateRows{}, fmt.Errorf("select template sets: %w", err)
	}
	return rows, nil
}

var _ ports.TemplateRepository = (*TemplateRepository)(nil)
