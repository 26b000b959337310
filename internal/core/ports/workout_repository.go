package ports

import "context"

// UpdateWorkoutInput replaces a workout's fields and its whole child tree.
type UpdateWorkoutInput struct {
	Name        string
	Description string
	Exercises   []ExerciseInput
}

// WorkoutRepository defines transactional writes on client workouts.
// Callers are expected to have passed the ownership guard.
type WorkoutRepository interface {
	// AssignTemplate copies the template's exercises and sets into a new
	// workout for the client. Either everything is written or nothing is.
	AssignTemplate(ctx context.Context, clientID, templateID int64) (WorkoutRows, error)
	// Replace updates the workout and deletes then reinserts its exercises
	// and sets in one transaction.
	Replace(ctx context.Context, workoutID int64, in UpdateWorkoutInput) (WorkoutRows, error)
	Find(ctx context.Context, workoutID int64) (WorkoutRows, error)
}

// AssignmentRecord is what an Idempotency-Key resolved to the first time.
type AssignmentRecord struct {
	WorkoutID  int64 `json:"workoutId"`
	ClientID   int64 `json:"clientId"`
	TemplateID int64 `json:"templateId"`
}

// AssignmentDeduper remembers which workout an Idempotency-Key produced.
type AssignmentDeduper interface {
	Lookup(ctx context.Context, userID int64, key string) (AssignmentRecord, bool, error)
	// Remember keeps the first record for a key; later calls are no-ops.
	Remember(ctx context.Context, userID int64, key string, rec AssignmentRecord) error
}
