package ports

import (
	"context"

	"github.com/trainerdesk/coach-api/internal/core/domain"
)

// AuthRepository defines the interface for user authentication persistence.
type AuthRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateLanguage(ctx context.Context, userID int64, lang domain.Language) error
}
