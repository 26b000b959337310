package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// LogHandler serves the per-client message and metric logs.
type LogHandler struct {
	messages ports.MessageService
	metrics  ports.MetricService
}

func NewLogHandler(messages ports.MessageService, metrics ports.MetricService) *LogHandler {
	return &LogHandler{messages: messages, metrics: metrics}
}

// ListMessages handles GET /clients/:id/messages.
//
// @Summary      List a client's messages, newest first
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id}/messages [get]
func (h *LogHandler) ListMessages(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	messages, err := h.messages.List(c.Request().Context(), userID, clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponses(messages))
}

// CreateMessage handles POST /clients/:id/messages.
//
// @Summary      Add a message to a client
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Client ID"
// @Param        body  body      createMessageRequest  true  "Message"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/messages [post]
func (h *LogHandler) CreateMessage(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.Create(c.Request().Context(), userID, clientID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMessageResponse(msg))
}

// ListMetrics handles GET /clients/:id/metrics.
//
// @Summary      List a client's metrics, most recently recorded first
// @Tags         metrics
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Client ID"
// @Success      200  {array}   metricResponse
// @Failure      404  {object}  errorResponse
// @Router       /clients/{id}/metrics [get]
func (h *LogHandler) ListMetrics(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	metrics, err := h.metrics.List(c.Request().Context(), userID, clientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMetricResponses(metrics))
}

// CreateMetric handles POST /clients/:id/metrics.
//
// @Summary      Record a client metric
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Client ID"
// @Param        body  body      createMetricRequest  true  "Metric; recordedAt defaults to now"
// @Success      201   {object}  metricResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /clients/{id}/metrics [post]
func (h *LogHandler) CreateMetric(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req createMetricRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	metric, err := h.metrics.Create(c.Request().Context(), userID, clientID, toCreateMetricInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMetricResponse(metric))
}
