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

type ClientService struct {
	clients   ports.ClientRepository
	templates ports.TemplateRepository
	workouts  ports.WorkoutRepository
	guard     *OwnershipGuard
	dedup     ports.AssignmentDeduper
	logger    zerolog.Logger
}

// NewClientService wires the client use cases. dedup may be nil, in which
// case Idempotency-Key headers are ignored.
func NewClientService(
	clients ports.ClientRepository,
	templates ports.TemplateRepository,
	workouts ports.WorkoutRepository,
	guard *OwnershipGuard,
	dedup ports.AssignmentDeduper,
	logger zerolog.Logger,
) *ClientService {
	return &ClientService{
		clients:   clients,
		templates: templates,
		workouts:  workouts,
		guard:     guard,
		dedup:     dedup,
		logger:    logger,
	}
}

// List returns the user's clients newest first with nested workouts.
func (s *ClientService) List(ctx context.Context, userID int64) ([]ports.ClientDetail, error) {
	rows, err := s.clients.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return assembler.Clients(rows), nil
}

func (s *ClientService) Get(ctx context.Context, userID, clientID int64) (*ports.ClientDetail, error) {
	rows, err := s.clients.FindForUser(ctx, userID, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if len(rows.Clients) == 0 {
		return nil, domain.ErrClientNotFound
	}
	return assembler.Client(&rows.Clients[0], rows.Workouts, rows.Exercises, rows.Sets), nil
}

func (s *ClientService) Create(ctx context.Context, userID int64, in ports.CreateClientInput) (*ports.ClientDetail, error) {
	client, err := s.clients.Create(ctx, userID, in)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	metrics.ClientsCreatedTotal.Inc()
	s.logger.Info().Int64("user_id", userID).Int64("client_id", client.ID).Msg("client created")
	return assembler.Client(client, nil, nil, nil), nil
}

// Delete removes the client and, through cascades, every descendant row.
func (s *ClientService) Delete(ctx context.Context, userID, clientID int64) error {
	if err := s.clients.Delete(ctx, userID, clientID); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.logger.Info().Int64("user_id", userID).Int64("client_id", clientID).Msg("client deleted")
	return nil
}

// AssignTemplate copies one of the user's templates into a new workout for
// one of the user's clients. With an idempotency key and a configured
// deduper, a replay returns the workout created by the first call.
func (s *ClientService) AssignTemplate(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error) {
	if err := s.guard.RequireClient(ctx, userID, in.ClientID); err != nil {
		return nil, err
	}

	replayed, err := s.replayAssignment(ctx, userID, in)
	if err != nil {
		metrics.TemplateAssignmentsTotal.WithLabelValues("conflict").Inc()
		return nil, err
	}
	if replayed != nil {
		metrics.TemplateAssignmentsTotal.WithLabelValues("replayed").Inc()
		return replayed, nil
	}

	tpl, err := s.templates.FindForUser(ctx, userID, in.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("assign template: %w", err)
	}
	if len(tpl.Templates) == 0 {
		return nil, domain.ErrTemplateNotFound
	}

	rows, err := s.workouts.AssignTemplate(ctx, in.ClientID, in.TemplateID)
	if err != nil {
		metrics.TemplateAssignmentsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("assign template: %w", err)
	}
	workout := assembler.FirstWorkout(rows)
	if workout == nil {
		return nil, fmt.Errorf("assign template: %w", domain.ErrWorkoutNotFound)
	}

	if in.IdempotencyKey != "" && s.dedup != nil {
		rec := ports.AssignmentRecord{WorkoutID: workout.ID, ClientID: in.ClientID, TemplateID: in.TemplateID}
		if err := s.dedup.Remember(ctx, userID, in.IdempotencyKey, rec); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember assignment")
		}
	}

	metrics.TemplateAssignmentsTotal.WithLabelValues("created").Inc()
	s.logger.Info().
		Int64("client_id", in.ClientID).
		Int64("template_id", in.TemplateID).
		Int64("workout_id", workout.ID).
		Msg("template assigned")
	return workout, nil
}

// replayAssignment returns the workout recorded for the idempotency key, or
// nil when there is nothing usable to replay. A key recorded for another
// client or template is ErrIdempotencyKeyReused.
//
// Lookup and Remember do not bracket the write: two concurrent first calls
// with the same key both create a workout and the first Remember wins.
func (s *ClientService) replayAssignment(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error) {
	if in.IdempotencyKey == "" || s.dedup == nil {
		return nil, nil
	}

	rec, found, err := s.dedup.Lookup(ctx, userID, in.IdempotencyKey)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("dedup lookup failed, assigning anyway")
		return nil, nil
	}
	if !found {
		return nil, nil
	}
	if rec.ClientID != in.ClientID || rec.TemplateID != in.TemplateID {
		s.logger.Warn().
			Str("idempotency_key", in.IdempotencyKey).
			Int64("recorded_client_id", rec.ClientID).
			Int64("recorded_template_id", rec.TemplateID).
			Msg("idempotency key reused")
		return nil, domain.ErrIdempotencyKeyReused
	}

	rows, err := s.workouts.Find(ctx, rec.WorkoutID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("workout_id", rec.WorkoutID).Msg("failed to load replayed workout")
		return nil, nil
	}
	// The workout may have been deleted with its client since.
	workout := assembler.FirstWorkout(rows)
	if workout == nil || workout.ClientID != in.ClientID {
		return nil, nil
	}

	s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("workout_id", rec.WorkoutID).Msg("idempotent replay")
	return workout, nil
}

// UpdateWorkout replaces the workout's fields and children atomically.
func (s *ClientService) UpdateWorkout(ctx context.Context, userID, workoutID int64, in ports.UpdateWorkoutInput) (*ports.WorkoutDetail, error) {
	if err := s.guard.RequireClientWorkout(ctx, userID, workoutID); err != nil {
		return nil, err
	}

	in.Exercises = normalizeExercises(in.Exercises)

	rows, err := s.workouts.Replace(ctx, workoutID, in)
	if err != nil {
		metrics.WorkoutUpdatesTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("update workout: %w", err)
	}
	workout := assembler.FirstWorkout(rows)
	if workout == nil {
		return nil, domain.ErrWorkoutNotFound
	}

	metrics.WorkoutUpdatesTotal.WithLabelValues("updated").Inc()
	s.logger.Info().Int64("workout_id", workoutID).Int("exercises", len(workout.Exercises)).Msg("workout updated")
	return workout, nil
}
