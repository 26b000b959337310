package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrPasswordTooLong    = errors.New("password is too long")
)

// MaxPasswordBytes is the longest password bcrypt will hash.
const MaxPasswordBytes = 72

// User models an authenticated trainer.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password"`
	Language     Language  `db:"language"`
	CreatedAt    time.Time `db:"created_at"`
}
