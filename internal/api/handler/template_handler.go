package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trainerdesk/coach-api/internal/core/ports"
)

// TemplateHandler handles HTTP requests for workout templates.
type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// List handles GET /templates.
//
// @Summary      List the caller's templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   templateResponse
// @Failure      401  {object}  errorResponse
// @Router       /templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	templates, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTemplateResponses(templates))
}

// Get handles GET /templates/:id.
//
// @Summary      Get a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Template ID"
// @Success      200  {object}  templateResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	templateID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tpl, err := h.service.Get(c.Request().Context(), userID, templateID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTemplateResponse(tpl))
}

// Create handles POST /templates.
//
// @Summary      Create a template with exercises and sets
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTemplateRequest  true  "Template tree"
// @Success      201   {object}  templateResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTemplateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tpl, err := h.service.Create(c.Request().Context(), userID, toCreateTemplateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTemplateResponse(tpl))
}

// Delete handles DELETE /templates/:id. Assigned workouts survive with a
// null templateId.
//
// @Summary      Delete a template
// @Tags         templates
// @Security     BearerAuth
// @Param        id   path  int  true  "Template ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	templateID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, templateID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
