package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type MessageRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db, now: time.Now}
}

func (r *MessageRepository) ListForClient(ctx context.Context, clientID int64) ([]domain.ClientMessage, error) {
	messages := []domain.ClientMessage{}
	if err := r.db.SelectContext(ctx, &messages, r.db.Rebind(
		`SELECT id, client_id, content, created_at
		   FROM client_messages
		  WHERE client_id = ?
		  ORDER BY created_at DESC, id DESC`), clientID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, clientID int64, content string) (*domain.ClientMessage, error) {
	msg := domain.ClientMessage{ClientID: clientID, Content: content, CreatedAt: r.now().UTC()}

	id, err := insertID(ctx, r.db,
		`INSERT INTO client_messages (client_id, content, created_at) VALUES (?, ?, ?) RETURNING id`,
		msg.ClientID, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	msg.ID = id
	return &msg, nil
}

type MetricRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMetricRepository(db *sqlx.DB) *MetricRepository {
	return &MetricRepository{db: db, now: time.Now}
}

func (r *MetricRepository) ListForClient(ctx context.Context, clientID int64) ([]domain.ClientMetric, error) {
	metrics := []domain.ClientMetric{}
	if err := r.db.SelectContext(ctx, &metrics, r.db.Rebind(
		`SELECT id, client_id, name, value, unit, recorded_at, created_at
		   FROM client_metrics
		  WHERE client_id = ?
		  ORDER BY recorded_at DESC, id DESC`), clientID); err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return metrics, nil
}

func (r *MetricRepository) Create(ctx context.Context, clientID int64, in ports.CreateMetricInput) (*domain.ClientMetric, error) {
	now := r.now().UTC()
	recordedAt := in.RecordedAt.UTC()
	if in.RecordedAt.IsZero() {
		recordedAt = now
	}

	m := domain.ClientMetric{
		ClientID:   clientID,
		Name:       in.Name,
		Value:      in.Value,
		Unit:       in.Unit,
		RecordedAt: recordedAt,
		CreatedAt:  now,
	}
	id, err := insertID(ctx, r.db,
		`INSERT INTO client_metrics (client_id, name, value, unit, recorded_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		m.ClientID, m.Name, m.Value, m.Unit, m.RecordedAt, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert metric: %w", err)
	}
	m.ID = id
	return &m, nil
}

var (
	_ ports.MessageRepository = (*MessageRepository)(nil)
	_ ports.MetricRepository  = (*MetricRepository)(nil)
)
