package domain

import (
	"errors"
	"time"
)

var ErrTemplateNotFound = errors.New("template not found")

// WorkoutTemplate is a reusable, trainer-owned workout blueprint.
type WorkoutTemplate struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// TemplateExercise belongs to a WorkoutTemplate; Position orders it.
type TemplateExercise struct {
	ID              int64  `db:"id"`
	TemplateID      int64  `db:"template_id"`
	Name            string `db:"name"`
	MuscleGroup     string `db:"muscle_group"`
	DifficultyLevel string `db:"difficulty_level"`
	Position        int    `db:"position"`
}

// TemplateSet belongs to a TemplateExercise; SetNumber orders it.
type TemplateSet struct {
	ID         int64   `db:"id"`
	ExerciseID int64   `db:"exercise_id"`
	SetNumber  int     `db:"set_number"`
	Weight     float64 `db:"weight"`
	Reps       int     `db:"reps"`
}
