package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/container"
	handlers "github.com/oksasatya/task-manager-pro/internal/interface/http"
	"github.com/oksasatya/task-manager-pro/internal/interface/middleware"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
)

// NotificationModule wires the notification inbox routes, all
// protected; every operation is scoped to the authenticated recipient.
type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/notifications")
	auth.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()),
	)
	{
		auth.GET("", m.Handler.List)
		auth.PUT("/mark-read", m.Handler.MarkAllRead)
		auth.PUT("/:id/read", m.Handler.MarkRead)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.DELETE("/clear-all", m.Handler.ClearAll)
		auth.POST("/send-reminders", m.Handler.SendReminders)
	}
}
