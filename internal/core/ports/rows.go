package ports

import "github.com/trainerdesk/coach-api/internal/core/domain"

// TemplateRows is the flat result of loading one or more templates.
type TemplateRows struct {
	Templates []domain.WorkoutTemplate
	Exercises []domain.TemplateExercise
	Sets      []domain.TemplateSet
}

// WorkoutRows is the flat result of loading one or more client workouts.
type WorkoutRows struct {
	Workouts  []domain.ClientWorkout
	Exercises []domain.ClientExercise
	Sets      []domain.ClientSet
}

// ClientRows is the flat result of loading clients with their workout trees.
type ClientRows struct {
	Clients []domain.Client
	WorkoutRows
}
