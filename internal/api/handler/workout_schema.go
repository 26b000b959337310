package handler

import (
	"strings"
	"time"
)

// --- Requests ---

type setRequest struct {
	SetNumber int     `json:"setNumber" validate:"gte=0"`
	Weight    float64 `json:"weight"    validate:"gte=0"`
	Reps      int     `json:"reps"      validate:"gte=0"`
}

type exerciseRequest struct {
	Name            string       `json:"name"            validate:"required,max=200"`
	MuscleGroup     string       `json:"muscleGroup"     validate:"max=100"`
	DifficultyLevel string       `json:"difficultyLevel" validate:"max=100"`
	Position        int          `json:"position"        validate:"gte=0"`
	Sets            []setRequest `json:"sets"            validate:"dive"`
}

type createTemplateRequest struct {
	Name        string            `json:"name"        validate:"required,max=200"`
	Description string            `json:"description"`
	Exercises   []exerciseRequest `json:"exercises"   validate:"dive"`
}

func (r *createTemplateRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimExercises(r.Exercises)
}

type updateWorkoutRequest struct {
	Name        string            `json:"name"        validate:"required,max=200"`
	Description string            `json:"description"`
	Exercises   []exerciseRequest `json:"exercises"   validate:"dive"`
}

func (r *updateWorkoutRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimExercises(r.Exercises)
}

func trimExercises(exercises []exerciseRequest) {
	for i := range exercises {
		exercises[i].Name = strings.TrimSpace(exercises[i].Name)
		exercises[i].MuscleGroup = strings.TrimSpace(exercises[i].MuscleGroup)
		exercises[i].DifficultyLevel = strings.TrimSpace(exercises[i].DifficultyLevel)
	}
}

// --- Responses ---

type setResponse struct {
	ID        int64   `json:"id"`
	SetNumber int     `json:"setNumber"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

type exerciseResponse struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	MuscleGroup     string        `json:"muscleGroup"`
	DifficultyLevel string        `json:"difficultyLevel"`
	Position        int           `json:"position"`
	Sets            []setResponse `json:"sets"`
}

type templateResponse struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"userId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	Exercises   []exerciseResponse `json:"exercises"`
}

type workoutResponse struct {
	ID          int64              `json:"id"`
	ClientID    int64              `json:"clientId"`
	TemplateID  *int64             `json:"templateId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"createdAt"`
	Exercises   []exerciseResponse `json:"exercises"`
}
