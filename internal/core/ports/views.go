package ports

import "time"

// SetDetail is a single ordered set within an exercise.
type SetDetail struct {
	ID        int64
	SetNumber int
	Weight    float64
	Reps      int
}

// ExerciseDetail is an exercise with its sets ordered by SetNumber.
type ExerciseDetail struct {
	ID              int64
	Name            string
	MuscleGroup     string
	DifficultyLevel string
	Position        int
	Sets            []SetDetail
}

// TemplateDetail is the nested view of a workout template.
type TemplateDetail struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	CreatedAt   time.Time
	Exercises   []ExerciseDetail
}

// WorkoutDetail is the nested view of a client workout.
type WorkoutDetail struct {
	ID          int64
	ClientID    int64
	TemplateID  *int64
	Name        string
	Description string
	CreatedAt   time.Time
	Exercises   []ExerciseDetail
}

// ClientDetail is the nested view of a client; Workouts are newest first.
type ClientDetail struct {
	ID        int64
	UserID    int64
	Name      string
	Email     *string
	CreatedAt time.Time
	Workouts  []WorkoutDetail
}
