package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trainerdesk/coach-api/internal/api/middleware"
)

// ctxUserID returns the user id injected by the Auth middleware. A missing
// id means the route was mounted without the middleware.
func ctxUserID(c echo.Context) (int64, error) {
	userID, _ := c.Get(middleware.UserIDKey).(int64)
	if userID <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return userID, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// normalizer is implemented by requests that tidy their fields (trimming
// whitespace) before validation.
type normalizer interface {
	normalize()
}

// bindAndValidate decodes the JSON body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if n, ok := req.(normalizer); ok {
		n.normalize()
	}
	return c.Validate(req)
}
