package main

import (
	"context"
	"time"

	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/logger"
	"portfolio/internal/repository"
	"portfolio/internal/service"
)

// Seed creates the admin account from ADMIN_EMAIL and ADMIN_PASSWORD
// without starting the HTTP server.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := service.NewUserService(repository.NewUserRepository(gormDB), nil)
	created, err := users.SeedAdmin(ctx, cfg.Admin)
	if err != nil {
		log.WithError(err).Fatal("seed admin")
	}

	entry := log.WithField("email", cfg.Admin.Email)
	if created {
		entry.Info("admin account created")
	} else {
		entry.Info("admin account already exists")
	}
}
