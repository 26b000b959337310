package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/trainerdesk/coach-api/internal/core/domain"
	"github.com/trainerdesk/coach-api/internal/core/ports"
)

type stubClientService struct {
	createFn func(ctx context.Context, userID int64, in ports.CreateClientInput) (*ports.ClientDetail, error)
	assignFn func(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error)
	updateFn func(ctx context.Context, userID, workoutID int64, in ports.UpdateWorkoutInput) (*ports.WorkoutDetail, error)
	listFn   func(ctx context.Context, userID int64) ([]ports.ClientDetail, error)
}

func (s *stubClientService) List(ctx context.Context, userID int64) ([]ports.ClientDetail, error) {
	return s.listFn(ctx, userID)
}

func (s *stubClientService) Get(ctx context.Context, userID, clientID int64) (*ports.ClientDetail, error) {
	return nil, domain.ErrClientNotFound
}

func (s *stubClientService) Create(ctx context.Context, userID int64, in ports.CreateClientInput) (*ports.ClientDetail, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubClientService) Delete(ctx context.Context, userID, clientID int64) error {
	return nil
}

func (s *stubClientService) AssignTemplate(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error) {
	return s.assignFn(ctx, userID, in)
}

func (s *stubClientService) UpdateWorkout(ctx context.Context, userID, workoutID int64, in ports.UpdateWorkoutInput) (*ports.WorkoutDetail, error) {
	return s.updateFn(ctx, userID, workoutID, in)
}

func TestClientHandler_Create_RendersEmptyWorkouts(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, userID int64, in ports.CreateClientInput) (*ports.ClientDetail, error) {
			if userID != 1 || in.Name != "Alice" || in.Email != nil {
				t.Fatalf("unexpected input: %d %+v", userID, in)
			}
			return &ports.ClientDetail{ID: 1, UserID: 1, Name: in.Name, CreatedAt: time.Now(), Workouts: []ports.WorkoutDetail{}}, nil
		},
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/clients", `{"name":" Alice ","email":""}`, 1)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"workouts":[]`) || !strings.Contains(body, `"email":null`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestClientHandler_Create_InvalidEmail(t *testing.T) {
	handler := NewClientHandler(&stubClientService{})

	c, _ := newTestContext(http.MethodPost, "/clients", `{"name":"Alice","email":"not-an-email"}`, 1)
	he := requireHTTPError(t, handler.Create(c), http.StatusBadRequest)
	if !strings.Contains(he.Message.(string), "email") {
		t.Fatalf("message should name the field: %v", he.Message)
	}
}

func TestClientHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubClientService{
		listFn: func(ctx context.Context, userID int64) ([]ports.ClientDetail, error) { return nil, nil },
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/clients", "", 1)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected [], got %s", rec.Body.String())
	}
}

func TestClientHandler_AssignTemplate(t *testing.T) {
	tplID := int64(7)
	stub := &stubClientService{
		assignFn: func(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error) {
			if in.ClientID != 10 || in.TemplateID != 7 || in.IdempotencyKey != "abc" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.WorkoutDetail{
				ID: 100, ClientID: 10, TemplateID: &tplID, Name: "Upper Body",
				Exercises: []ports.ExerciseDetail{{ID: 1, Name: "Bench", Position: 1, Sets: []ports.SetDetail{}}},
			}, nil
		},
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/clients/10/assign-template", `{"templateId":7}`, 1)
	c.SetParamNames("id")
	c.SetParamValues("10")
	c.Request().Header.Set("Idempotency-Key", " abc ")

	if err := handler.AssignTemplate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp workoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.TemplateID == nil || *resp.TemplateID != 7 || len(resp.Exercises) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"sets":[]`) {
		t.Fatalf("empty sets must render as []: %s", rec.Body.String())
	}
}

func TestClientHandler_AssignTemplate_BadInput(t *testing.T) {
	handler := NewClientHandler(&stubClientService{
		assignFn: func(ctx context.Context, userID int64, in ports.AssignTemplateInput) (*ports.WorkoutDetail, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	tests := map[string]struct {
		id   string
		body string
	}{
		"non numeric id":   {id: "abc", body: `{"templateId":7}`},
		"zero id":          {id: "0", body: `{"templateId":7}`},
		"missing template": {id: "10", body: `{}`},
		"string template":  {id: "10", body: `{"templateId":"7"}`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodPost, "/clients/x/assign-template", tc.body, 1)
			c.SetParamNames("id")
			c.SetParamValues(tc.id)
			requireHTTPError(t, handler.AssignTemplate(c), http.StatusBadRequest)
		})
	}
}

func TestClientHandler_UpdateWorkout_ValidatesNestedSets(t *testing.T) {
	handler := NewClientHandler(&stubClientService{})

	body := `{"name":"Week 1","exercises":[{"name":"Bench","sets":[{"setNumber":1,"weight":80,"reps":-3}]}]}`
	c, _ := newTestContext(http.MethodPut, "/client-workouts/5", body, 1)
	c.SetParamNames("id")
	c.SetParamValues("5")

	he := requireHTTPError(t, handler.UpdateWorkout(c), http.StatusBadRequest)
	if !strings.Contains(he.Message.(string), "exercises[0].sets[0].reps") {
		t.Fatalf("message should carry the field path: %v", he.Message)
	}
}

func TestClientHandler_UpdateWorkout_PassesTree(t *testing.T) {
	stub := &stubClientService{
		updateFn: func(ctx context.Context, userID, workoutID int64, in ports.UpdateWorkoutInput) (*ports.WorkoutDetail, error) {
			if workoutID != 5 || len(in.Exercises) != 2 || in.Exercises[1].Sets[0].Reps != 12 {
				t.Fatalf("unexpected input: %d %+v", workoutID, in)
			}
			return nil, domain.ErrWorkoutNotFound
		},
	}
	handler := NewClientHandler(stub)

	body := `{"name":"Week 1","exercises":[{"name":"Bench"},{"name":"Row","sets":[{"setNumber":1,"weight":40,"reps":12}]}]}`
	c, _ := newTestContext(http.MethodPut, "/client-workouts/5", body, 1)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.UpdateWorkout(c); !errors.Is(err, domain.ErrWorkoutNotFound) {
		t.Fatalf("expected ErrWorkoutNotFound, got %v", err)
	}
}
