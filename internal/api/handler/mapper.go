package handler

import (
	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// --- Request → Service input ---

func toExerciseInputs(reqs []exerciseRequest) []ports.ExerciseInput {
	out := make([]ports.ExerciseInput, 0, len(reqs))
	for _, ex := range reqs {
		sets := make([]ports.SetInput, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, ports.SetInput{SetNumber: s.SetNumber, Weight: s.Weight, Reps: s.Reps})
		}
		out = append(out, ports.ExerciseInput{
			Name:            ex.Name,
			MuscleGroup:     ex.MuscleGroup,
			DifficultyLevel: ex.DifficultyLevel,
			Position:        ex.Position,
			Sets:            sets,
		})
	}
	return out
}

func toCreateTemplateInput(req createTemplateRequest) ports.CreateTemplateInput {
	return ports.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Exercises:   toExerciseInputs(req.Exercises),
	}
}

func toUpdateWorkoutInput(req updateWorkoutRequest) ports.UpdateWorkoutInput {
	return ports.UpdateWorkoutInput{
		Name:        req.Name,
		Description: req.Description,
		Exercises:   toExerciseInputs(req.Exercises),
	}
}

func toCreateMetricInput(req createMetricRequest) ports.CreateMetricInput {
	in := ports.CreateMetricInput{Name: req.Name, Unit: req.Unit}
	if req.Value != nil {
		in.Value = *req.Value
	}
	if req.RecordedAt != nil {
		in.RecordedAt = req.RecordedAt.Time
	}
	return in
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Language: string(u.Language)}
}

func toExerciseResponses(exercises []ports.ExerciseDetail) []exerciseResponse {
	out := make([]exerciseResponse, 0, len(exercises))
	for _, ex := range exercises {
		sets := make([]setResponse, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, setResponse{ID: s.ID, SetNumber: s.SetNumber, Weight: s.Weight, Reps: s.Reps})
		}
		out = append(out, exerciseResponse{
			ID:              ex.ID,
			Name:            ex.Name,
			MuscleGroup:     ex.MuscleGroup,
			DifficultyLevel: ex.DifficultyLevel,
			Position:        ex.Position,
			Sets:            sets,
		})
	}
	return out
}

func toTemplateResponse(t *ports.TemplateDetail) templateResponse {
	return templateResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC(),
		Exercises:   toExerciseResponses(t.Exercises),
	}
}

func toTemplateResponses(templates []ports.TemplateDetail) []templateResponse {
	out := make([]templateResponse, 0, len(templates))
	for i := range templates {
		out = append(out, toTemplateResponse(&templates[i]))
	}
	return out
}

func toWorkoutResponse(w *ports.WorkoutDetail) workoutResponse {
	return workoutResponse{
		ID:          w.ID,
		ClientID:    w.ClientID,
		TemplateID:  w.TemplateID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt.UTC(),
		Exercises:   toExerciseResponses(w.Exercises),
	}
}

func toClientResponse(c *ports.ClientDetail) clientResponse {
	workouts := make([]workoutResponse, 0, len(c.Workouts))
	for i := range c.Workouts {
		workouts = append(workouts, toWorkoutResponse(&c.Workouts[i]))
	}
	return clientResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt.UTC(),
		Workouts:  workouts,
	}
}

func toClientResponses(clients []ports.ClientDetail) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	return out
}

func toMessageResponse(m *domain.ClientMessage) messageResponse {
	return messageResponse{ID: m.ID, ClientID: m.ClientID, Content: m.Content, CreatedAt: m.CreatedAt.UTC()}
}

func toMessageResponses(messages []domain.ClientMessage) []messageResponse {
	out := make([]messageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, toMessageResponse(&messages[i]))
	}
	return out
}

func toMetricResponse(m *domain.ClientMetric) metricResponse {
	return metricResponse{
		ID:         m.ID,
		ClientID:   m.ClientID,
		Name:       m.Name,
		Value:      m.Value,
		Unit:       m.Unit,
		RecordedAt: m.RecordedAt.UTC(),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func toMetricResponses(metrics []domain.ClientMetric) []metricResponse {
	out := make([]metricResponse, 0, len(metrics))
	for i := range metrics {
		out = append(out, toMetricResponse(&metrics[i]))
	}
	return out
}
