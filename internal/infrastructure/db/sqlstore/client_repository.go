package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// ClientRepository stores clients and answers ownership queries for every
// client-scoped resource.
type ClientRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db, now: time.Now}
}

func (r *ClientRepository) ListForUser(ctx context.Context, userID int64) (ports.ClientRows, error) {
	rows, err := loadClientRows(ctx, r.db, "c.user_id = ?", userID)
	if err != nil {
		return ports.ClientRows{}, fmt.Errorf("list clients: %w", err)
	}
	return rows, nil
}

func (r *ClientRepository) FindForUser(ctx context.Context, userID, clientID int64) (ports.ClientRows, error) {
	rows, err := loadClientRows(ctx, r.db, "c.user_id = ? AND c.id = ?", userID, clientID)
	if err != nil {
		return ports.ClientRows{}, fmt.Errorf("find client: %w", err)
	}
	return rows, nil
}

func (r *ClientRepository) Create(ctx context.Context, userID int64, in ports.CreateClientInput) (*domain.Client, error) {
	client := domain.Client{
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: r.now().UTC(),
	}

	id, err := insertID(ctx, r.db,
		`INSERT INTO clients (user_id, name, email, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		client.UserID, client.Name, client.Email, client.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	client.ID = id
	return &client, nil
}

func (r *ClientRepository) Delete(ctx context.Context, userID, clientID int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(
		`DELETE FROM clients WHERE id = ? AND user_id = ?`), clientID, userID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if n == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *ClientRepository) ClientOwnedBy(ctx context.Context, clientID, userID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT COUNT(1) FROM clients WHERE id = ? AND user_id = ?`, clientID, userID)
}

func (r *ClientRepository) WorkoutOwnedBy(ctx context.Context, workoutID, userID int64) (bool, error) {
	return r.exists(ctx,
		`SELECT COUNT(1)
		   FROM client_workouts w
		   JOIN clients c ON c.id = w.client_id
		  WHERE w.id = ? AND c.user_id = ?`, workoutID, userID)
}

func (r *ClientRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(query), args...); err != nil {
		return false, fmt.Errorf("ownership check: %w", err)
	}
	return n > 0, nil
}

// loadClientRows fetches clients matching where (aliased c) with their
// workouts, exercises and sets.
func loadClientRows(ctx context.Context, q sqlx.ExtContext, where string, args ...any) (ports.ClientRows, error) {
	var rows ports.ClientRows

	if err := sqlx.SelectContext(ctx, q, &rows.Clients, q.Rebind(
		`SELECT c.id, c.user_id, c.name, c.email, c.created_at
		   FROM clients c
		  WHERE `+where+`
		  ORDER BY c.created_at DESC, c.id DESC`), args...); err != nil {
		return ports.ClientRows{}, fmt.Errorf("select clients: %w", err)
	}
	if len(rows.Clients) == 0 {
		return rows, nil
	}

	workouts, err := loadWorkoutRows(ctx, q,
		"JOIN clients c ON c.id = w.client_id WHERE "+where, args...)
	if err != nil {
		return ports.ClientRows{}, err
	}
	rows.WorkoutRows = workouts
	return rows, nil
}

var (
	_ ports.ClientRepository    = (*ClientRepository)(nil)
	_ ports.OwnershipRepository = (*ClientRepository)(nil)
)
