package main

import (
	"context"
	"errors"
	"flag"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-user-service/config"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-user-service/internal/domain/entity"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-user-service/pkg/helpers"
)

const (
	defaultName  = "John Doe"
	defaultEmail = "me@mail.com"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	entity.SetLogger(logger)

	nameFlag := flag.String("name", defaultName, "user name")
	emailFlag := flag.String("email", defaultEmail, "email address")
	flag.Parse()

	name, err := entity.NewUserName(*nameFlag)
	if err != nil {
		logger.Fatalf("invalid name: %v", err)
	}
	email, err := entity.NewSecretEmailAddress(*emailFlag)
	if err != nil {
		logger.Fatalf("invalid email: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	repo := pginfra.NewUserRepository(pool)
	u, err := repo.Create(ctx, entity.NewUser(name, email))
	if err != nil {
		var ioErr *apperror.IOError
		if errors.As(err, &ioErr) {
			logger.WithError(ioErr.Cause).Fatal("failed to seed user")
		}
		logger.Fatalf("failed to seed user: %v", err)
	}
	logger.WithField("user_id", u.ID.String()).WithField("name", u.Name.String()).Info("seeded user")
}
