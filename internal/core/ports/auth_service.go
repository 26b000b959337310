package ports

import (
	"context"

	"github.com/trainerdesk/coach-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, language string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	UpdateLanguage(ctx context.Context, userID int64, language string) (domain.Language, error)
}

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (int64, error)
}
