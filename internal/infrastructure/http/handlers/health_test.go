package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, readinessResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)
	require.NoError(t, h(c))

	var resp readinessResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, resp
}

func TestLiveness(t *testing.T) {
	rec, _ := serve(t, NewHealthHandler().Liveness)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReadiness_DatabaseUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	rec, resp := serve(t, NewHealthDependenciesHandler(db, nil).Readiness)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "ok", resp.Dependencies["database"].Status)
	require.NotContains(t, resp.Dependencies, "redis")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadiness_DatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	rec, resp := serve(t, NewHealthDependenciesHandler(db, nil).Readiness)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", resp.Status)
	require.Equal(t, "connection refused", resp.Dependencies["database"].Error)
}
