package ports

import "context"

// AssignTemplateInput carries a template assignment request.
type AssignTemplateInput struct {
	ClientID       int64
	TemplateID     int64
	IdempotencyKey string
}

// ClientService defines use-case operations for clients and their workouts.
type ClientService interface {
	List(ctx context.Context, userID int64) ([]ClientDetail, error)
	Get(ctx context.Context, userID, clientID int64) (*ClientDetail, error)
	Create(ctx context.Context, userID int64, in CreateClientInput) (*ClientDetail, error)
	Delete(ctx context.Context, userID, clientID int64) error
	AssignTemplate(ctx context.Context, userID int64, in AssignTemplateInput) (*WorkoutDetail, error)
	UpdateWorkout(ctx context.Context, userID, workoutID int64, in UpdateWorkoutInput) (*WorkoutDetail, error)
}
