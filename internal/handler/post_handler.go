package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/middleware"
	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// PostHandler serves the blog post resource.
type PostHandler struct {
	svc service.PostService
}

// NewPostHandler creates a post handler.
func NewPostHandler(svc service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePost godoc
// @Summary Create post
// @Description Accepts JSON, or multipart with the payload as JSON in "data" and an optional "thumbnail" image.
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body validation.PostInput true "Post payload"
// @Success 201 {object} DataResponse{data=model.Post}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /post [post]
func (h *PostHandler) CreatePost(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperrors.ErrUnauthorized
	}

	var in validation.PostInput
	if err := bindPayload(c, &in); err != nil {
		return err
	}

	post, err := h.svc.Create(c.Request().Context(), claims.UserID, in, middleware.FileFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: post})
}

// ListPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} DataResponse{data=[]model.Post}
// @Router /post [get]
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: posts})
}

// GetPostBySlug godoc
// @Summary Get post by slug
// @Description Counts a view.
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} DataResponse{data=model.Post}
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c echo.Context) error {
	post, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: post})
}

// GetPost godoc
// @Summary Get post by id
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} DataResponse{data=model.Post}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/{id} [get]
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	post, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: post})
}

// UpdatePost godoc
// @Summary Update post
// @Description Partial update. A new title also changes the slug.
// @Tags posts
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body validation.PostPatch true "Fields to change"
// @Success 200 {object} DataResponse{data=model.Post}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /post/{id} [patch]
func (h *PostHandler) UpdatePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var patch validation.PostPatch
	if err := bindPayload(c, &patch); err != nil {
		return err
	}

	post, err := h.svc.Update(c.Request().Context(), id, patch, middleware.FileFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DataResponse{Data: post})
}

// DeletePost godoc
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /post/{id} [delete]
func (h *PostHandler) DeletePost(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}
