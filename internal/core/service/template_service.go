package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trainerdesk/coach-api/internal/api/metrics"
	"github.com/trainerdesk/coach-api/internal/core/assembler"
	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type TemplateService struct {
	repo   ports.TemplateRepository
	logger zerolog.Logger
}

func NewTemplateService(repo ports.TemplateRepository, logger zerolog.Logger) *TemplateService {
	return &TemplateService{repo: repo, logger: logger}
}

// List returns the user's templates newest first.
func (s *TemplateService) List(ctx context.Context, userID int64) ([]ports.TemplateDetail, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return assembler.Templates(rows), nil
}

func (s *TemplateService) Get(ctx context.Context, userID, templateID int64) (*ports.TemplateDetail, error) {
	rows, err := s.repo.FindForUser(ctx, userID, templateID)
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	if len(rows.Templates) == 0 {
		return nil, domain.ErrTemplateNotFound
	}
	return assembler.Template(&rows.Templates[0], rows.Exercises, rows.Sets), nil
}

func (s *TemplateService) Create(ctx context.Context, userID int64, in ports.CreateTemplateInput) (*ports.TemplateDetail, error) {
	in.Exercises = normalizeExercises(in.Exercises)

	rows, err := s.repo.Create(ctx, userID, in)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create template")
		return nil, fmt.Errorf("create template: %w", err)
	}
	if len(rows.Templates) == 0 {
		return nil, fmt.Errorf("create template: %w", domain.ErrTemplateNotFound)
	}

	detail := assembler.Template(&rows.Templates[0], rows.Exercises, rows.Sets)
	metrics.TemplatesCreatedTotal.Inc()
	s.logger.Info().Int64("user_id", userID).Int64("template_id", detail.ID).Int("exercises", len(detail.Exercises)).Msg("template created")
	return detail, nil
}

// Delete removes the template. Client workouts copied from it survive with
// their template reference cleared.
func (s *TemplateService) Delete(ctx context.Context, userID, templateID int64) error {
	if err := s.repo.Delete(ctx, userID, templateID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	s.logger.Info().Int64("user_id", userID).Int64("template_id", templateID).Msg("template deleted")
	return nil
}
