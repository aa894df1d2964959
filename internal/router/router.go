package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/handler"
	"portfolio/internal/logger"
	gate "portfolio/internal/middleware"
	"portfolio/internal/model"
	"portfolio/internal/validation"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *handler.AuthHandler
	Post    *handler.PostHandler
	Project *handler.ProjectHandler
	User    *handler.UserHandler
	Health  *handler.HealthHandler
}

// Options are the cross-cutting settings of the HTTP surface.
type Options struct {
	CORSOrigins   []string
	MaxUploadSize int64
}

// Register wires routes and middleware.
func Register(e *echo.Echo, log *logrus.Logger, jwtService *auth.JWTService, opts Options, h Handlers) {
	e.HTTPErrorHandler = apperrors.Handler(log)
	e.Validator = &CustomValidator{validator: validation.New()}

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestID())
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.GET("/", h.Health.Root)
	e.GET("/healthz", h.Health.Healthz)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	api.GET("/health/supabase", h.Health.Supabase)

	requireAuth := gate.RequireAuth(jwtService)
	adminOnly := gate.RequireRole(model.RoleAdmin)
	postUpload := gate.Upload(gate.UploadConfig{Field: "thumbnail", MaxBytes: opts.MaxUploadSize, Log: log})
	projectUpload := gate.Upload(gate.UploadConfig{Field: "thumbnail", MaxBytes: opts.MaxUploadSize, RejectUnsupported: true})

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", h.Auth.Me, requireAuth)

	posts := api.Group("/post")
	posts.GET("", h.Post.ListPosts)
	posts.GET("/slug/:slug", h.Post.GetPostBySlug)
	posts.GET("/:id", h.Post.GetPost)
	posts.POST("", h.Post.CreatePost, requireAuth, adminOnly, postUpload)
	posts.PATCH("/:id", h.Post.UpdatePost, requireAuth, adminOnly, postUpload)
	posts.DELETE("/:id", h.Post.DeletePost, requireAuth, adminOnly)

	projects := api.Group("/project")
	projects.GET("", h.Project.ListProjects)
	projects.GET("/:id", h.Project.GetProject)
	projects.POST("", h.Project.CreateProject, requireAuth, adminOnly, projectUpload)
	projects.PATCH("/:id", h.Project.UpdateProject, requireAuth, adminOnly, projectUpload)
	projects.DELETE("/:id", h.Project.DeleteProject, requireAuth, adminOnly)

	users := api.Group("/user", requireAuth, adminOnly)
	users.GET("", h.User.ListUsers)
	users.GET("/:id", h.User.GetUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
// Failures come back as field level validation errors.
func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Translate(cv.validator.Struct(i))
}
