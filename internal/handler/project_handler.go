package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio/internal/middleware"
	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// ProjectHandler serves the portfolio project resource.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// CreateProject godoc
// @Summary Create project
// @Tags projects
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body validation.ProjectInput true "Project payload"
// @Success 201 {object} DataResponse{data=model.Project}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /project [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var in validation.ProjectInput
	if err := bindPayload(c, &in); err != nil {
		return err
	}

	project, err := h.svc.Create(c.Request().Context(), in, middleware.FileFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: project})
}

// ListProjects godoc
// @Summary List projects, newest first
// @Tags projects
// @Produce json
// @Success 200 {object} DataResponse{data=[]model.Project}
// @Router /project [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: projects})
}

// GetProject godoc
// @Summary Get project by id
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} DataResponse{data=model.Project}
// @Failure 404 {object} errors.ErrorResponse
// @Router /project/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	project, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: project})
}

// UpdateProject godoc
// @Summary Update project
// @Tags projects
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Param request body validation.ProjectPatch true "Fields to change"
// @Success 200 {object} DataResponse{data=model.Project}
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /project/{id} [patch]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch validation.ProjectPatch
	if err := bindPayload(c, &patch); err != nil {
		return err
	}

	project, err := h.svc.Update(c.Request().Context(), id, patch, middleware.FileFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: project})
}

// DeleteProject godoc
// @Summary Delete project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path int true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /project/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Project deleted successfully"})
}
