package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trainerdesk/coach-api/internal/api/metrics"
	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type MessageService struct {
	repo   ports.MessageRepository
	guard  *OwnershipGuard
	logger zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, guard *OwnershipGuard, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, guard: guard, logger: logger}
}

// List returns the client's messages newest first.
func (s *MessageService) List(ctx context.Context, userID, clientID int64) ([]domain.ClientMessage, error) {
	if err := s.guard.RequireClient(ctx, userID, clientID); err != nil {
		return nil, err
	}
	messages, err := s.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (s *MessageService) Create(ctx context.Context, userID, clientID int64, content string) (*domain.ClientMessage, error) {
	if err := s.guard.RequireClient(ctx, userID, clientID); err != nil {
		return nil, err
	}
	msg, err := s.repo.Create(ctx, clientID, content)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	metrics.LogEntriesCreatedTotal.WithLabelValues("message").Inc()
	s.logger.Debug().Int64("client_id", clientID).Int64("message_id", msg.ID).Msg("message created")
	return msg, nil
}

type MetricService struct {
	repo   ports.MetricRepository
	guard  *OwnershipGuard
	logger zerolog.Logger
}

func NewMetricService(repo ports.MetricRepository, guard *OwnershipGuard, logger zerolog.Logger) *MetricService {
	return &MetricService{repo: repo, guard: guard, logger: logger}
}

// List returns the client's metrics, most recently recorded first.
func (s *MetricService) List(ctx context.Context, userID, clientID int64) ([]domain.ClientMetric, error) {
	if err := s.guard.RequireClient(ctx, userID, clientID); err != nil {
		return nil, err
	}
	list, err := s.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	return list, nil
}

func (s *MetricService) Create(ctx context.Context, userID, clientID int64, in ports.CreateMetricInput) (*domain.ClientMetric, error) {
	if err := s.guard.RequireClient(ctx, userID, clientID); err != nil {
		return nil, err
	}
	m, err := s.repo.Create(ctx, clientID, in)
	if err != nil {
		return nil, fmt.Errorf("create metric: %w", err)
	}
	metrics.LogEntriesCreatedTotal.WithLabelValues("metric").Inc()
	s.logger.Debug().Int64("client_id", clientID).Int64("metric_id", m.ID).Str("name", m.Name).Msg("metric created")
	return m, nil
}
