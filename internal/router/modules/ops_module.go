package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-user-service/internal/interface/http"
)

// OpsModule exposes GET /health under the API group.
type OpsModule struct {
	Health *handlers.HealthHandler
}

func NewOpsModule(h *handlers.HealthHandler) *OpsModule { return &OpsModule{Health: h} }

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.Health.Health)
}
