package ports

import (
	"context"
	"time"

	"github.com/trainerdesk/coach-api/internal/core/domain"
)

// CreateMetricInput carries a new client measurement. A zero RecordedAt
// means "now".
type CreateMetricInput struct {
	Name       string
	Value      float64
	Unit       *string
	RecordedAt time.Time
}

// MessageRepository persists the append-only client message log.
type MessageRepository interface {
	ListForClient(ctx context.Context, clientID int64) ([]domain.ClientMessage, error)
	Create(ctx context.Context, clientID int64, content string) (*domain.ClientMessage, error)
}

// MetricRepository persists the append-only client metric log.
type MetricRepository interface {
	ListForClient(ctx context.Context, clientID int64) ([]domain.ClientMetric, error)
	Create(ctx context.Context, clientID int64, in CreateMetricInput) (*domain.ClientMetric, error)
}

// MessageService defines use-case operations for client messages.
type MessageService interface {
	List(ctx context.Context, userID, clientID int64) ([]domain.ClientMessage, error)
	Create(ctx context.Context, userID, clientID int64, content string) (*domain.ClientMessage, error)
}

// MetricService defines use-case operations for client metrics.
type MetricService interface {
	List(ctx context.Context, userID, clientID int64) ([]domain.ClientMetric, error)
	Create(ctx context.Context, userID, clientID int64, in CreateMetricInput) (*domain.ClientMetric, error)
}
