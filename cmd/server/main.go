package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "portfolio/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"portfolio/internal/auth"
	"portfolio/internal/cache"
	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/handler"
	"portfolio/internal/health"
	"portfolio/internal/logger"
	"portfolio/internal/media"
	"portfolio/internal/repository"
	"portfolio/internal/router"
	"portfolio/internal/service"
)

// @title Portfolio API
// @version 1.0
// @description Content API for a personal site: posts, projects, users and session login.
// @host localhost:5000
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.WithError(err).Fatal("database handle")
	}
	defer sqlDB.Close()

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.WithError(err).Warn("drop tables")
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	host := newMediaHost(cfg.Media, log)

	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL())

	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService)
	postService := service.NewPostService(postRepo, host, cacheClient, cfg.CacheTTL, log)
	projectService := service.NewProjectService(projectRepo, host, cacheClient, cfg.CacheTTL, log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	created, err := userService.SeedAdmin(seedCtx, cfg.Admin)
	cancelSeed()
	switch {
	case err != nil:
		log.WithError(err).Error("seed admin")
	case created:
		log.WithField("email", cfg.Admin.Email).Info("admin account created")
	}

	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(authService, userService, cfg.TokenTTL(), cfg.IsProduction()),
		Post:    handler.NewPostHandler(postService),
		Project: handler.NewProjectHandler(projectService),
		User:    handler.NewUserHandler(userService),
		Health:  handler.NewHealthHandler(sqlDB, health.NewSupabase(cfg.Supabase, nil)),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, log, jwtService, router.Options{
		CORSOrigins:   cfg.CORSOrigins,
		MaxUploadSize: cfg.MaxUploadSize,
	}, handlers)

	log.Infof("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
}

// newMediaHost returns nil when the object store cannot be configured, in
// which case requests carrying a file fail with an upload error.
func newMediaHost(cfg config.Media, log *logrus.Logger) media.Host {
	store, err := media.NewMinIO(cfg, log)
	if err != nil {
		log.WithError(err).Warn("media host disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		log.WithError(err).Warn("media bucket not ready")
	}
	return store
}

func swaggerURL(host string) string {
	switch {
	case host == "":
		return "http://localhost:5000/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
