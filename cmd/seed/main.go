package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-hexagonal-users/config"
	"github.com/oksasatya/go-hexagonal-users/internal/application"
	"github.com/oksasatya/go-hexagonal-users/internal/container"
	"github.com/oksasatya/go-hexagonal-users/pkg/helpers"
)

func main() {
	email := flag.String("email", "demo@example.com", "email of the demo user")
	password := flag.String("password", "Demo!Passw0rd", "password of the demo user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	cfg.EventsEnabled = false // seeding must not send welcome mails
	cfg.RateLimitEnabled = false
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build application")
	}
	defer c.Close()

	u, err := c.Users.CreateUser(ctx, application.CreateUserInput{Email: *email, Password: *password})
	switch {
	case errors.Is(err, application.ErrDuplicateEmail):
		logger.WithField("email", *email).Info("demo user already exists")
	case err != nil:
		logger.WithError(err).Error("failed to seed user")
	default:
		logger.WithField("user_id", u.ID).WithField("email", u.Email).Info("seeded demo user")
	}
}
