package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/trainerdesk/coach-api/internal/infrastructure/db/sqlstore"
)

type testServer struct {
	t *testing.T
	e *echo.Echo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Dialect: sqlstore.DialectSQLite,
		DSN:     filepath.Join(t.TempDir(), "api.sqlite3"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlstore.Migrate(db))

	reg := prometheus.NewRegistry()
	e := NewRouter(Deps{
		DB:         db,
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		Logger:     zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
	return &testServer{t: t, e: e}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Language string `json:"language"`
	} `json:"user"`
}

type setBody struct {
	ID        int64   `json:"id"`
	SetNumber int     `json:"setNumber"`
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
}

type exerciseBody struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	MuscleGroup     string    `json:"muscleGroup"`
	DifficultyLevel string    `json:"difficultyLevel"`
	Position        int       `json:"position"`
	Sets            []setBody `json:"sets"`
}

type templateBody struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Exercises   []exerciseBody `json:"exercises"`
}

type workoutBody struct {
	ID         int64          `json:"id"`
	ClientID   int64          `json:"clientId"`
	TemplateID *int64         `json:"templateId"`
	Name       string         `json:"name"`
	Exercises  []exerciseBody `json:"exercises"`
}

type clientBody struct {
	ID       int64         `json:"id"`
	UserID   int64         `json:"userId"`
	Name     string        `json:"name"`
	Email    *string       `json:"email"`
	Workouts []workoutBody `json:"workouts"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *testServer) register(username string) string {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/register", "", fmt.Sprintf(`{"username":%q,"password":"x"}`, username))
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authBody](s.t, rec).Token
}

const upperBodyTemplate = `{
	"name": "Upper Body",
	"exercises": [
		{"name": "Bench", "muscleGroup": "Chest", "difficultyLevel": "Intermediate",
		 "sets": [{"setNumber": 1, "weight": 80, "reps": 8}]}
	]
}`

func TestExampleScenario(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", "", `{"username":"coach","password":"x"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	auth := decode[authBody](t, rec)
	require.NotEmpty(t, auth.Token)
	require.Equal(t, "coach", auth.User.Username)
	require.Equal(t, "en", auth.User.Language)

	rec = s.do(http.MethodPost, "/clients", auth.Token, `{"name":"Alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"workouts":[]`)
	client := decode[clientBody](t, rec)
	require.Equal(t, int64(1), client.ID)
	require.Nil(t, client.Email)

	rec = s.do(http.MethodPost, "/templates", auth.Token, upperBodyTemplate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tpl := decode[templateBody](t, rec)
	require.Equal(t, "Upper Body", tpl.Name)
	require.Len(t, tpl.Exercises, 1)
	require.Equal(t, 1, tpl.Exercises[0].Position)
	require.Len(t, tpl.Exercises[0].Sets, 1)

	rec = s.do(http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", client.ID), auth.Token,
		fmt.Sprintf(`{"templateId":%d}`, tpl.ID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workout := decode[workoutBody](t, rec)
	require.Equal(t, client.ID, workout.ClientID)
	require.NotNil(t, workout.TemplateID)
	require.Equal(t, tpl.ID, *workout.TemplateID)
	require.Len(t, workout.Exercises, 1)

	got, want := workout.Exercises[0], tpl.Exercises[0]
	require.Equal(t, want.Name, got.Name)
	require.Equal(t, want.MuscleGroup, got.MuscleGroup)
	require.Equal(t, want.DifficultyLevel, got.DifficultyLevel)
	require.Len(t, got.Sets, 1)
	require.Equal(t, want.Sets[0].Weight, got.Sets[0].Weight)
	require.Equal(t, want.Sets[0].Reps, got.Sets[0].Reps)

	rec = s.do(http.MethodGet, "/clients", auth.Token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	clients := decode[[]clientBody](t, rec)
	require.Len(t, clients, 1)
	require.Len(t, clients[0].Workouts, 1)
}

func TestRegister_DuplicateIsConflict(t *testing.T) {
	s := newTestServer(t)
	s.register("coach")

	rec := s.do(http.MethodPost, "/register", "", `{"username":"coach","password":"other"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Username already exists", decode[errorBody](t, rec).Error)
}

func TestRegister_PasswordOverBcryptLimitIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", "", fmt.Sprintf(`{"username":"coach","password":%q}`, strings.Repeat("a", 80)))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	require.Equal(t, "Password must be at most 72 bytes", decode[errorBody](t, rec).Error)
}

func TestRegister_MissingFieldsIsBadRequest(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", "", `{"username":"coach"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, decode[errorBody](t, rec).Error)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.register("coach")

	rec := s.do(http.MethodPost, "/login", "", `{"username":"coach","password":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decode[authBody](t, rec).Token)

	wrongPassword := s.do(http.MethodPost, "/login", "", `{"username":"coach","password":"nope"}`)
	unknownUser := s.do(http.MethodPost, "/login", "", `{"username":"ghost","password":"x"}`)
	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	require.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/clients", "/templates"} {
		rec := s.do(http.MethodGet, path, "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
		require.NotEmpty(t, decode[errorBody](t, rec).Error)

		rec = s.do(http.MethodGet, path, "garbage", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestOwnershipIsMaskedAsNotFound(t *testing.T) {
	s := newTestServer(t)
	tokenA := s.register("coach-a")
	tokenB := s.register("coach-b")

	client := decode[clientBody](t, s.do(http.MethodPost, "/clients", tokenA, `{"name":"Alice"}`))
	tpl := decode[templateBody](t, s.do(http.MethodPost, "/templates", tokenA, upperBodyTemplate))
	workout := decode[workoutBody](t, s.do(http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", client.ID), tokenA,
		fmt.Sprintf(`{"templateId":%d}`, tpl.ID)))
	clientOfB := decode[clientBody](t, s.do(http.MethodPost, "/clients", tokenB, `{"name":"Bob"}`))

	tests := map[string]struct {
		method, path, body string
	}{
		"get client":        {http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), ""},
		"delete client":     {http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), ""},
		"list messages":     {http.MethodGet, fmt.Sprintf("/clients/%d/messages", client.ID), ""},
		"create message":    {http.MethodPost, fmt.Sprintf("/clients/%d/messages", client.ID), `{"content":"hi"}`},
		"list metrics":      {http.MethodGet, fmt.Sprintf("/clients/%d/metrics", client.ID), ""},
		"create metric":     {http.MethodPost, fmt.Sprintf("/clients/%d/metrics", client.ID), `{"name":"weight","value":70}`},
		"assign to foreign": {http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", client.ID), fmt.Sprintf(`{"templateId":%d}`, tpl.ID)},
		"foreign template":  {http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", clientOfB.ID), fmt.Sprintf(`{"templateId":%d}`, tpl.ID)},
		"get template":      {http.MethodGet, fmt.Sprintf("/templates/%d", tpl.ID), ""},
		"update workout":    {http.MethodPut, fmt.Sprintf("/client-workouts/%d", workout.ID), `{"name":"hijack"}`},
		"missing client":    {http.MethodGet, "/clients/9999/messages", ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			rec := s.do(tc.method, tc.path, tokenB, tc.body)
			require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
			require.NotEmpty(t, decode[errorBody](t, rec).Error)
		})
	}

	// nothing of A's was touched
	rec := s.do(http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), tokenA, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[clientBody](t, rec)
	require.Len(t, got.Workouts, 1)
	require.Equal(t, "Upper Body", got.Workouts[0].Name)
}

func TestTemplateRoundTripKeepsShapeAndOrder(t *testing.T) {
	s := newTestServer(t)
	token := s.register("coach")

	body := `{
		"name": "Full Body",
		"description": "three lifts",
		"exercises": [
			{"name": "Deadlift", "position": 3, "sets": [{"setNumber": 2, "weight": 140, "reps": 3}, {"setNumber": 1, "weight": 120, "reps": 5}]},
			{"name": "Squat", "position": 1, "sets": [{"setNumber": 1, "weight": 100, "reps": 5}, {"setNumber": 2, "weight": 110, "reps": 5}, {"setNumber": 3, "weight": 115, "reps": 3}]},
			{"name": "Press", "position": 2}
		]
	}`
	rec := s.do(http.MethodPost, "/templates", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/templates", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	templates := decode[[]templateBody](t, rec)
	require.Len(t, templates, 1)

	exercises := templates[0].Exercises
	require.Len(t, exercises, 3)
	require.Equal(t, []string{"Squat", "Press", "Deadlift"}, []string{exercises[0].Name, exercises[1].Name, exercises[2].Name})
	for i, ex := range exercises {
		require.Equal(t, i+1, ex.Position)
	}
	require.Len(t, exercises[0].Sets, 3)
	require.NotNil(t, exercises[1].Sets)
	require.Empty(t, exercises[1].Sets)
	require.Contains(t, rec.Body.String(), `"sets":[]`)

	deadlift := exercises[2].Sets
	require.Len(t, deadlift, 2)
	require.Equal(t, 1, deadlift[0].SetNumber)
	require.Equal(t, float64(120), deadlift[0].Weight)
	require.Equal(t, 2, deadlift[1].SetNumber)
}

func TestUpdateWorkoutReplacesTree(t *testing.T) {
	s := newTestServer(t)
	token := s.register("coach")

	client := decode[clientBody](t, s.do(http.MethodPost, "/clients", token, `{"name":"Alice","email":"alice@example.com"}`))
	require.NotNil(t, client.Email)
	tpl := decode[templateBody](t, s.do(http.MethodPost, "/templates", token, upperBodyTemplate))
	workout := decode[workoutBody](t, s.do(http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", client.ID), token,
		fmt.Sprintf(`{"templateId":%d}`, tpl.ID)))

	rec := s.do(http.MethodPut, fmt.Sprintf("/client-workouts/%d", workout.ID), token, `{
		"name": "Upper Body (week 2)",
		"exercises": [
			{"name": "Incline Bench", "sets": [{"weight": 70, "reps": 10}, {"weight": 75, "reps": 8}]},
			{"name": "Pull-up", "sets": [{"reps": 6}]}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[workoutBody](t, rec)
	require.Equal(t, "Upper Body (week 2)", updated.Name)
	require.Len(t, updated.Exercises, 2)
	require.Equal(t, "Incline Bench", updated.Exercises[0].Name)
	require.Equal(t, []int{1, 2}, []int{updated.Exercises[0].Sets[0].SetNumber, updated.Exercises[0].Sets[1].SetNumber})

	invalid := s.do(http.MethodPut, fmt.Sprintf("/client-workouts/%d", workout.ID), token,
		`{"name":"broken","exercises":[{"name":"Row","sets":[{"reps":-1}]}]}`)
	require.Equal(t, http.StatusBadRequest, invalid.Code)

	got := decode[clientBody](t, s.do(http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), token, ""))
	require.Equal(t, "Upper Body (week 2)", got.Workouts[0].Name)
	require.Len(t, got.Workouts[0].Exercises, 2)
}

func TestDeleteTemplateKeepsAssignedWorkouts(t *testing.T) {
	s := newTestServer(t)
	token := s.register("coach")

	client := decode[clientBody](t, s.do(http.MethodPost, "/clients", token, `{"name":"Alice"}`))
	tpl := decode[templateBody](t, s.do(http.MethodPost, "/templates", token, upperBodyTemplate))
	s.do(http.MethodPost, fmt.Sprintf("/clients/%d/assign-template", client.ID), token, fmt.Sprintf(`{"templateId":%d}`, tpl.ID))

	rec := s.do(http.MethodDelete, fmt.Sprintf("/templates/%d", tpl.ID), token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	got := decode[clientBody](t, s.do(http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), token, ""))
	require.Len(t, got.Workouts, 1)
	require.Nil(t, got.Workouts[0].TemplateID)
	require.Len(t, got.Workouts[0].Exercises, 1)
	require.Contains(t, s.do(http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), token, "").Body.String(), `"templateId":null`)

	rec = s.do(http.MethodDelete, fmt.Sprintf("/clients/%d", client.ID), token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), token, "").Code)
}

func TestMessagesAndMetrics(t *testing.T) {
	s := newTestServer(t)
	token := s.register("coach")
	client := decode[clientBody](t, s.do(http.MethodPost, "/clients", token, `{"name":"Alice"}`))
	base := fmt.Sprintf("/clients/%d", client.ID)

	rec := s.do(http.MethodGet, base+"/messages", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	for _, content := range []string{"first", "second"} {
		rec = s.do(http.MethodPost, base+"/messages", token, fmt.Sprintf(`{"content":%q}`, content))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	messages := decode[[]struct {
		Content  string `json:"content"`
		ClientID int64  `json:"clientId"`
	}](t, s.do(http.MethodGet, base+"/messages", token, ""))
	require.Len(t, messages, 2)
	require.Equal(t, "second", messages[0].Content)
	require.Equal(t, client.ID, messages[0].ClientID)

	rec = s.do(http.MethodPost, base+"/metrics", token, `{"name":"weight","value":72.5,"unit":"kg","recordedAt":"2024-01-01T08:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, base+"/metrics", token, `{"name":"body fat","value":14}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"unit":null`)

	metrics := decode[[]struct {
		Name       string    `json:"name"`
		Value      float64   `json:"value"`
		RecordedAt time.Time `json:"recordedAt"`
	}](t, s.do(http.MethodGet, base+"/metrics", token, ""))
	require.Len(t, metrics, 2)
	require.Equal(t, "body fat", metrics[0].Name)
	require.True(t, metrics[1].RecordedAt.Equal(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)))

	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, base+"/metrics", token, `{"name":"weight"}`).Code)
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/clients/abc/messages", token, "").Code)
}

func TestUpdatePreferences(t *testing.T) {
	s := newTestServer(t)
	token := s.register("coach")

	rec := s.do(http.MethodPut, "/users/preferences", token, `{"language":"pt-BR"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"language":"pt"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/login", "", `{"username":"coach","password":"x"}`)
	require.Equal(t, "pt", decode[authBody](t, rec).User.Language)

	rec = s.do(http.MethodPut, "/users/preferences", token, `{"language":"klingon"}`)
	require.JSONEq(t, `{"language":"en"}`, rec.Body.String())
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)

	rec := s.do(http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"database"`)

	s.do(http.MethodGet, "/clients", "", "")
	rec = s.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "coach_http_requests_total")

	rec = s.do(http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotEmpty(t, decode[errorBody](t, rec).Error)
}
