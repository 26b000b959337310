package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type createClientRequest struct {
	Name  string  `json:"name"  validate:"required,max=200"`
	Email *string `json:"email" validate:"omitempty,email"`
}

func (r *createClientRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		if email == "" {
			r.Email = nil
		} else {
			r.Email = &email
		}
	}
}

type assignTemplateRequest struct {
	TemplateID int64 `json:"templateId" validate:"required,gt=0"`
}

type clientResponse struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	Name      string            `json:"name"`
	Email     *string           `json:"email"`
	CreatedAt time.Time         `json:"createdAt"`
	Workouts  []workoutResponse `json:"workouts"`
}

type createMessageRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func (r *createMessageRequest) normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type messageResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"clientId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type createMetricRequest struct {
	Name       string     `json:"name"       validate:"required,max=100"`
	Value      *float64   `json:"value"      validate:"required"`
	Unit       *string    `json:"unit"       validate:"omitempty,max=20"`
	RecordedAt *recordedTime `json:"recordedAt"`
}

func (r *createMetricRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// recordedTime accepts RFC 3339 timestamps and bare dates (midnight UTC).
type recordedTime struct {
	time.Time
}

func (t *recordedTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("recordedAt: expected a string")
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("recordedAt: %q is not an RFC 3339 timestamp or YYYY-MM-DD date", s)
}

type metricResponse struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"clientId"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Unit       *string   `json:"unit"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}
