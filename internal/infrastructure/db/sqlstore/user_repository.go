package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainerdesk/coach-api/internal/core/domain"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := insertID(ctx, r.db,
		`INSERT INTO users (username, password, language, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		user.Username, user.PasswordHash, string(user.Language), user.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, r.db.Rebind(
		`SELECT id, username, password, language, created_at FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, userID int64, language domain.Language) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`UPDATE users SET language = ? WHERE id = ?`), string(language), userID)
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update language: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
