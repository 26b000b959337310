package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trainerdesk/coach-api/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// ClientHandler handles HTTP requests for clients and their workouts.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// List handles GET /clients.
//
// @Summary      List the caller's clients with nested workouts
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientResponse
// @Failure      401  {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	clients, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponses(clients))
}

// Get handles GET /clients/:id.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  clientResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	client, err := h.service.Get(c.Request().Context(), userID, clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Create handles POST /clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), userID, ports.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// Delete handles DELETE /clients/:id.
//
// @Summary      Delete a client and everything beneath it
// @Tags         clients
// @Security     BearerAuth
// @Param        id   path  int  true  "Client ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, clientID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AssignTemplate handles POST /clients/:id/assign-template.
//
// @Summary      Copy a template into a new client workout
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      int                    true   "Client ID"
// @Param        Idempotency-Key  header    string                 false  "Replays return the first workout instead of a copy"
// @Param        body             body      assignTemplateRequest  true   "Template to assign"
// @Success      201              {object}  workoutResponse
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /clients/{id}/assign-template [post]
func (h *ClientHandler) AssignTemplate(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req assignTemplateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workout, err := h.service.AssignTemplate(c.Request().Context(), userID, ports.AssignTemplateInput{
		ClientID:       clientID,
		TemplateID:     req.TemplateID,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(headerIdempotencyKey)),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toWorkoutResponse(workout))
}

// UpdateWorkout handles PUT /client-workouts/:id. The exercise list replaces
// the stored one wholesale.
//
// @Summary      Replace a client workout
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Client workout ID"
// @Param        body  body      updateWorkoutRequest  true  "Workout tree"
// @Success      200   {object}  workoutResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /client-workouts/{id} [put]
func (h *ClientHandler) UpdateWorkout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	workoutID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateWorkoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workout, err := h.service.UpdateWorkout(c.Request().Context(), userID, workoutID, toUpdateWorkoutInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkoutResponse(workout))
}
