package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "portfolio/internal/errors"
	"portfolio/internal/middleware"
	"portfolio/internal/model"
	"portfolio/internal/service"
	"portfolio/internal/validation"
)

// TokenCookie is the name of the session cookie.
const TokenCookie = middleware.SessionCookie

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	ttl         time.Duration
	production  bool
}

// NewAuthHandler creates a new auth handler. In production the session
// cookie is Secure and SameSite=None so a separate frontend origin can send it.
func NewAuthHandler(authService service.AuthService, userService service.UserService, ttl time.Duration, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		ttl:         ttl,
		production:  production,
	}
}

// LoginResponse represents an authentication response.
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UserResponse wraps the current user.
type UserResponse struct {
	User *model.User `json:"user"`
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validation.LoginInput true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validation.LoginInput
	if err := bindPayload(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.SetCookie(h.cookie(token, h.ttl))
	return c.JSON(http.StatusOK, LoginResponse{Token: token, User: user})
}

// Logout godoc
// @Summary Logout user
// @Description Expires the session cookie. Tokens are stateless and stay valid until they expire.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.cookie("", -1))
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return apperrors.ErrUnauthorized
	}
	user, err := h.userService.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) cookie(value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteLaxMode,
	}
	if h.production {
		cookie.SameSite = http.SameSiteNoneMode
	}
	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
		cookie.Expires = time.Now().Add(maxAge)
	}
	return cookie
}
