package ports

import "context"

// SetInput carries one set as written by a trainer.
type SetInput struct {
	SetNumber int
	Weight    float64
	Reps      int
}

// ExerciseInput carries one exercise and its sets. Position and SetNumber
// are already contiguous (1..n) when they reach a repository.
type ExerciseInput struct {
	Name            string
	MuscleGroup     string
	DifficultyLevel string
	Position        int
	Sets            []SetInput
}

// CreateTemplateInput carries a new template and its children.
type CreateTemplateInput struct {
	Name        string
	Description string
	Exercises   []ExerciseInput
}

// TemplateRepository defines persistence operations for workout templates.
// Every lookup is scoped to the owning user; a template owned by someone else
// is reported as absent.
type TemplateRepository interface {
	ListForUser(ctx context.Context, userID int64) (TemplateRows, error)
	FindForUser(ctx context.Context, userID, templateID int64) (TemplateRows, error)
	// Create inserts the template, exercises and sets in one transaction and
	// returns the rows read back inside it.
	Create(ctx context.Context, userID int64, in CreateTemplateInput) (TemplateRows, error)
	Delete(ctx context.Context, userID, templateID int64) error
}
