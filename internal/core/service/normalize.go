package service

import (
	"cmp"
	"slices"

	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// normalizeExercises orders exercises by any caller-supplied Position (and
// sets by SetNumber), breaking ties by request order, then renumbers both
// contiguously from 1. The input is not modified.
func normalizeExercises(in []ports.ExerciseInput) []ports.ExerciseInput {
	out := slices.Clone(in)
	slices.SortStableFunc(out, func(a, b ports.ExerciseInput) int { return cmp.Compare(a.Position, b.Position) })

	for i := range out {
		out[i].Position = i + 1

		sets := slices.Clone(out[i].Sets)
		slices.SortStableFunc(sets, func(a, b ports.SetInput) int { return cmp.Compare(a.SetNumber, b.SetNumber) })
		for j := range sets {
			sets[j].SetNumber = j + 1
		}
		out[i].Sets = sets
	}
	return out
}
