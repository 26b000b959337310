package service

import (
	"context"
	"fmt"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// OwnershipGuard resolves whether a user owns a client-scoped resource.
// Failures are reported as not-found so non-owners cannot probe for ids.
type OwnershipGuard struct {
	repo ports.OwnershipRepository
}

func NewOwnershipGuard(repo ports.OwnershipRepository) *OwnershipGuard {
	return &OwnershipGuard{repo: repo}
}

// OwnsClient reports whether clientID belongs to userID.
func (g *OwnershipGuard) OwnsClient(ctx context.Context, userID, clientID int64) (bool, error) {
	if userID <= 0 || clientID <= 0 {
		return false, nil
	}
	ok, err := g.repo.ClientOwnedBy(ctx, clientID, userID)
	if err != nil {
		return false, fmt.Errorf("check client ownership: %w", err)
	}
	return ok, nil
}

// OwnsClientWorkout reports whether the workout's client belongs to userID.
func (g *OwnershipGuard) OwnsClientWorkout(ctx context.Context, userID, workoutID int64) (bool, error) {
	if userID <= 0 || workoutID <= 0 {
		return false, nil
	}
	ok, err := g.repo.WorkoutOwnedBy(ctx, workoutID, userID)
	if err != nil {
		return false, fmt.Errorf("check workout ownership: %w", err)
	}
	return ok, nil
}

// RequireClient returns domain.ErrClientNotFound unless userID owns clientID.
func (g *OwnershipGuard) RequireClient(ctx context.Context, userID, clientID int64) error {
	ok, err := g.OwnsClient(ctx, userID, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrClientNotFound
	}
	return nil
}

// RequireClientWorkout returns domain.ErrWorkoutNotFound unless userID owns
// the workout through its client.
func (g *OwnershipGuard) RequireClientWorkout(ctx context.Context, userID, workoutID int64) error {
	ok, err := g.OwnsClientWorkout(ctx, userID, workoutID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrWorkoutNotFound
	}
	return nil
}
