package domain

import (
	"errors"
	"time"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrWorkoutNotFound = errors.New("workout not found")

	// ErrIdempotencyKeyReused means the key already produced an assignment
	// for a different client or template.
	ErrIdempotencyKeyReused = errors.New("idempotency key reused for a different assignment")
)

// Client is a trainee owned by a User.
type Client struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Name      string    `db:"name"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

// ClientWorkout is a per-client workout, optionally copied from a template.
// TemplateID is nulled when the source template is deleted.
type ClientWorkout struct {
	ID          int64     `db:"id"`
	ClientID    int64     `db:"client_id"`
	TemplateID  *int64    `db:"template_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

type ClientExercise struct {
	ID                 int64  `db:"id"`
	ClientWorkoutID    int64  `db:"client_workout_id"`
	TemplateExerciseID *int64 `db:"template_exercise_id"`
	Name               string `db:"name"`
	MuscleGroup        string `db:"muscle_group"`
	DifficultyLevel    string `db:"difficulty_level"`
	Position           int    `db:"position"`
}

type ClientSet struct {
	ID               int64   `db:"id"`
	ClientExerciseID int64   `db:"client_exercise_id"`
	SetNumber        int     `db:"set_number"`
	Weight           float64 `db:"weight"`
	Reps             int     `db:"reps"`
}

// ClientMessage is an append-only note attached to a client.
type ClientMessage struct {
	ID        int64     `db:"id"`
	ClientID  int64     `db:"client_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// ClientMetric is an append-only measurement attached to a client.
type ClientMetric struct {
	ID         int64     `db:"id"`
	ClientID   int64     `db:"client_id"`
	Name       string    `db:"name"`
	Value      float64   `db:"value"`
	Unit       *string   `db:"unit"`
	RecordedAt time.Time `db:"recorded_at"`
	CreatedAt  time.Time `db:"created_at"`
}
