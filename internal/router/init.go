package router

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-ddd-user-service/config"
	appuser "github.com/oksasatya/go-ddd-user-service/internal/application"
	"github.com/oksasatya/go-ddd-user-service/internal/container"
	repouser "github.com/oksasatya/go-ddd-user-service/internal/domain/repository"
	"github.com/oksasatya/go-ddd-user-service/internal/infrastructure/events"
	meminfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-user-service/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-ddd-user-service/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-service/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-user-service/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *appuser.Service
	Handler *handlers.UserHandler
}

// BuildUserRepository picks the storage backend from config and, when events
// are enabled, decorates it with the event publisher.
func BuildUserRepository() repouser.UserRepository {
	cfg := container.GetConfig()

	var repo repouser.UserRepository
	if cfg.StorageDriver == config.StorageDriverMemory || container.GetPGPool() == nil {
		repo = meminfra.NewUserRepository()
	} else {
		repo = pginfra.NewUserRepository(container.GetPGPool())
	}

	if cfg.EventsEnabled {
		repo = events.NewRepository(repo, container.GetPublisher(), container.GetLogger())
	}
	return repo
}

func buildUserDeps() UserModuleDeps {
	repo := BuildUserRepository()
	service := appuser.NewService(repo, container.GetLogger())
	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

func healthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()

	var allow middleware.AllowFunc = middleware.AllowPaths("/api/health")
	if cfg.RateLimitPrivateIP {
		allow = middleware.AnyOf(allow, middleware.AllowPrivateIP())
	}

	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler, container.GetRedis(), cfg.RateLimitPerMinute, allow, container.GetLogger()))
	r.Add(modules.NewOpsModule(handlers.NewHealthHandler(healthChecks())))

	if reg := container.GetMetricsRegistry(); cfg.MetricsEnabled && reg != nil {
		r.Handle(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}
}
