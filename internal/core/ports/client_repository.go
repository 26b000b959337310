package ports

import (
	"context"

	"github.com/trainerdesk/coach-api/internal/core/domain"
)

// CreateClientInput carries a new client.
type CreateClientInput struct {
	Name  string
	Email *string
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	// ListForUser returns the user's clients newest first with every
	// workout, exercise and set beneath them.
	ListForUser(ctx context.Context, userID int64) (ClientRows, error)
	FindForUser(ctx context.Context, userID, clientID int64) (ClientRows, error)
	Create(ctx context.Context, userID int64, in CreateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, userID, clientID int64) error
}

// OwnershipRepository answers ownership questions along the chain
// leaf → client → user.
type OwnershipRepository interface {
	ClientOwnedBy(ctx context.Context, clientID, userID int64) (bool, error)
	WorkoutOwnedBy(ctx context.Context, workoutID, userID int64) (bool, error)
}
