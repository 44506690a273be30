package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	handlers "github.com/oksasatya/go-ddd-user-service/internal/interface/http"
	"github.com/oksasatya/go-ddd-user-service/internal/interface/middleware"
)

// UserModule wires the user CRUD handlers:
// POST /users, GET /users/:id, PATCH /users/:id, DELETE /users/:id
type UserModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
	// PerMinute is the per-IP budget for reads. Writes get a fifth of it per route.
	PerMinute int
	Allow     middleware.AllowFunc
	Logger    *logrus.Logger
}

func NewUserModule(h *handlers.UserHandler, rdb *redis.Client, perMinute int, allow middleware.AllowFunc, logger *logrus.Logger) *UserModule {
	return &UserModule{Handler: h, Redis: rdb, PerMinute: perMinute, Allow: allow, Logger: logger}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(middleware.RateLimit(m.Redis, m.PerMinute, time.Minute, middleware.KeyByIP(), m.Allow, m.Logger))

	writeMax := m.PerMinute / 5
	if writeMax < 1 {
		writeMax = 1
	}
	writeLimiter := middleware.RateLimit(m.Redis, writeMax, time.Minute, middleware.KeyByIPAndPath(), m.Allow, m.Logger)

	users.POST("", writeLimiter, m.Handler.Create)
	users.GET("/:id", m.Handler.Get)
	users.PATCH("/:id", writeLimiter, m.Handler.Update)
	users.DELETE("/:id", writeLimiter, m.Handler.Delete)
}
