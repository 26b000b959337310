package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// recordingTemplateRepo echoes whatever Create receives back as stored rows.
type recordingTemplateRepo struct {
	stubTemplateRepo
	created   ports.CreateTemplateInput
	createErr error
}

func (r *recordingTemplateRepo) Create(_ context.Context, userID int64, in ports.CreateTemplateInput) (ports.TemplateRows, error) {
	if r.createErr != nil {
		return ports.TemplateRows{}, r.createErr
	}
	r.created = in

	rows := ports.TemplateRows{
		Templates: []domain.WorkoutTemplate{{ID: 1, UserID: userID, Name: in.Name, Description: in.Description}},
	}
	var setID int64
	for i, ex := range in.Exercises {
		exID := int64(i + 1)
		rows.Exercises = append(rows.Exercises, domain.TemplateExercise{
			ID: exID, TemplateID: 1, Name: ex.Name, Position: ex.Position,
		})
		for _, set := range ex.Sets {
			setID++
			rows.Sets = append(rows.Sets, domain.TemplateSet{
				ID: setID, ExerciseID: exID, SetNumber: set.SetNumber, Weight: set.Weight, Reps: set.Reps,
			})
		}
	}
	return rows, nil
}

func TestTemplateService_Create_RenumbersInput(t *testing.T) {
	repo := &recordingTemplateRepo{}
	svc := NewTemplateService(repo, zerolog.Nop())

	detail, err := svc.Create(context.Background(), 1, ports.CreateTemplateInput{
		Name: "Legs",
		Exercises: []ports.ExerciseInput{
			{Name: "Lunge", Position: 5},
			{Name: "Squat", Position: 0, Sets: []ports.SetInput{{SetNumber: 3, Reps: 3}, {SetNumber: 1, Reps: 8}}},
			{Name: "Calf raise", Position: 5},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Squat", "Lunge", "Calf raise"}
	for i, ex := range repo.created.Exercises {
		if ex.Name != want[i] || ex.Position != i+1 {
			t.Errorf("exercise %d: got %s@%d, want %s@%d", i, ex.Name, ex.Position, want[i], i+1)
		}
	}
	squatSets := repo.created.Exercises[0].Sets
	if squatSets[0].Reps != 8 || squatSets[0].SetNumber != 1 || squatSets[1].SetNumber != 2 {
		t.Errorf("sets not renumbered in order: %+v", squatSets)
	}

	if detail.Name != "Legs" || len(detail.Exercises) != 3 {
		t.Fatalf("unexpected detail: %+v", detail)
	}
	if detail.Exercises[1].Sets == nil {
		t.Error("exercise without sets should render an empty slice")
	}
}

func TestTemplateService_Create_PropagatesStoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	svc := NewTemplateService(&recordingTemplateRepo{createErr: storeErr}, zerolog.Nop())

	_, err := svc.Create(context.Background(), 1, ports.CreateTemplateInput{Name: "Legs"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestTemplateService_Get_ForeignTemplateIsNotFound(t *testing.T) {
	repo := &stubTemplateRepo{templates: map[int64]domain.WorkoutTemplate{
		7: {ID: 7, UserID: 1, Name: "Mine"},
	}}
	svc := NewTemplateService(repo, zerolog.Nop())

	got, err := svc.Get(context.Background(), 1, 7)
	if err != nil || got == nil || got.Name != "Mine" {
		t.Fatalf("owner lookup failed: %+v, %v", got, err)
	}

	if _, err := svc.Get(context.Background(), 2, 7); !errors.Is(err, domain.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestTemplateService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewTemplateService(&stubTemplateRepo{}, zerolog.Nop())

	got, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
