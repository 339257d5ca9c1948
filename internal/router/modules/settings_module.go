package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/container"
	handlers "github.com/oksasatya/task-manager-pro/internal/interface/http"
	"github.com/oksasatya/task-manager-pro/internal/interface/middleware"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
)

// SettingsModule wires per-user settings routes, all protected.
type SettingsModule struct {
	Handler *handlers.SettingsHandler
	JWT     *helpers.JWTManager
}

func NewSettingsModule(h *handlers.SettingsHandler, jwt *helpers.JWTManager) *SettingsModule {
	return &SettingsModule{Handler: h, JWT: jwt}
}

func (m *SettingsModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/user-settings")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.GET("", m.Handler.Get)
		auth.PUT("", m.Handler.Update)
	}
}
