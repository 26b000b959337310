// Package assembler nests flat template and client rows into the tree-shaped
// views returned by the API.
//
// Children are matched to their parent by foreign key, then stably sorted:
// exercises by Position, sets by SetNumber, client workouts by CreatedAt
// descending. Rows belonging to other parents are ignored, so callers may
// pass the rows of a whole batch. Empty child collections are non-nil.
package assembler

import (
	"cmp"
	"slices"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// Template nests exercises and sets under t. A nil t yields nil.
func Template(t *domain.WorkoutTemplate, exercises []domain.TemplateExercise, sets []domain.TemplateSet) *ports.TemplateDetail {
	if t == nil {
		return nil
	}

	owned := filter(exercises, func(e domain.TemplateExercise) bool { return e.TemplateID == t.ID })
	slices.SortStableFunc(owned, func(a, b domain.TemplateExercise) int { return cmp.Compare(a.Position, b.Position) })

	details := make([]ports.ExerciseDetail, 0, len(owned))
	for _, e := range owned {
		exerciseSets := filter(sets, func(s domain.TemplateSet) bool { return s.ExerciseID == e.ID })
		slices.SortStableFunc(exerciseSets, func(a, b domain.TemplateSet) int { return cmp.Compare(a.SetNumber, b.SetNumber) })

		setDetails := make([]ports.SetDetail, 0, len(exerciseSets))
		for _, s := range exerciseSets {
			setDetails = append(setDetails, ports.SetDetail{ID: s.ID, SetNumber: s.SetNumber, Weight: s.Weight, Reps: s.Reps})
		}
		details = append(details, ports.ExerciseDetail{
			ID:              e.ID,
			Name:            e.Name,
			MuscleGroup:     e.MuscleGroup,
			DifficultyLevel: e.DifficultyLevel,
			Position:        e.Position,
			Sets:            setDetails,
		})
	}

	return &ports.TemplateDetail{
		ID:          t.ID,
		UserID:      t.UserID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		Exercises:   details,
	}
}

// Templates assembles every template in rows, keeping their order.
func Templates(rows ports.TemplateRows) []ports.TemplateDetail {
	out := make([]ports.TemplateDetail, 0, len(rows.Templates))
	for i := range rows.Templates {
		out = append(out, *Template(&rows.Templates[i], rows.Exercises, rows.Sets))
	}
	return out
}

// ClientWorkout nests exercises and sets under w. A nil w yields nil.
func ClientWorkout(w *domain.ClientWorkout, exercises []domain.ClientExercise, sets []domain.ClientSet) *ports.WorkoutDetail {
	if w == nil {
		return nil
	}

	owned := filter(exercises, func(e domain.ClientExercise) bool { return e.ClientWorkoutID == w.ID })
	slices.SortStableFunc(owned, func(a, b domain.ClientExercise) int { return cmp.Compare(a.Position, b.Position) })

	details := make([]ports.ExerciseDetail, 0, len(owned))
	for _, e := range owned {
		exerciseSets := filter(sets, func(s domain.ClientSet) bool { return s.ClientExerciseID == e.ID })
		slices.SortStableFunc(exerciseSets, func(a, b domain.ClientSet) int { return cmp.Compare(a.SetNumber, b.SetNumber) })

		setDetails := make([]ports.SetDetail, 0, len(exerciseSets))
		for _, s := range exerciseSets {
			setDetails = append(setDetails, ports.SetDetail{ID: s.ID, SetNumber: s.SetNumber, Weight: s.Weight, Reps: s.Reps})
		}
		details = append(details, ports.ExerciseDetail{
			ID:              e.ID,
			Name:            e.Name,
			MuscleGroup:     e.MuscleGroup,
			DifficultyLevel: e.DifficultyLevel,
			Position:        e.Position,
			Sets:            setDetails,
		})
	}

	return &ports.WorkoutDetail{
		ID:          w.ID,
		ClientID:    w.ClientID,
		TemplateID:  w.TemplateID,
		Name:        w.Name,
		Description: w.Description,
		CreatedAt:   w.CreatedAt,
		Exercises:   details,
	}
}

// FirstWorkout assembles the first workout in rows, or nil when rows holds none.
func FirstWorkout(rows ports.WorkoutRows) *ports.WorkoutDetail {
	if len(rows.Workouts) == 0 {
		return nil
	}
	return ClientWorkout(&rows.Workouts[0], rows.Exercises, rows.Sets)
}

// Client nests workouts (newest first) under c. A nil c yields nil.
func Client(c *domain.Client, workouts []domain.ClientWorkout, exercises []domain.ClientExercise, sets []domain.ClientSet) *ports.ClientDetail {
	if c == nil {
		return nil
	}

	owned := filter(workouts, func(w domain.ClientWorkout) bool { return w.ClientID == c.ID })
	slices.SortStableFunc(owned, func(a, b domain.ClientWorkout) int { return b.CreatedAt.Compare(a.CreatedAt) })

	details := make([]ports.WorkoutDetail, 0, len(owned))
	for i := range owned {
		details = append(details, *ClientWorkout(&owned[i], exercises, sets))
	}

	return &ports.ClientDetail{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		Workouts:  details,
	}
}

// Clients assembles every client in rows, keeping their order.
func Clients(rows ports.ClientRows) []ports.ClientDetail {
	out := make([]ports.ClientDetail, 0, len(rows.Clients))
	for i := range rows.Clients {
		out = append(out, *Client(&rows.Clients[i], rows.Workouts, rows.Exercises, rows.Sets))
	}
	return out
}

// filter returns a fresh slice so sorting never reorders the caller's rows.
func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
