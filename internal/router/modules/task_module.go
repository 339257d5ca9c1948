package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/container"
	handlers "github.com/oksasatya/task-manager-pro/internal/interface/http"
	"github.com/oksasatya/task-manager-pro/internal/interface/middleware"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
)

// TaskModule wires the task CRUD and trash routes, all protected.
type TaskModule struct {
	Handler *handlers.TaskHandler
	JWT     *helpers.JWTManager
}

func NewTaskModule(h *handlers.TaskHandler, jwt *helpers.JWTManager) *TaskModule {
	return &TaskModule{Handler: h, JWT: jwt}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/tasks")
	auth.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()),
	)
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/filter", m.Handler.List)
		auth.GET("/assigned", m.Handler.ListAssigned)
		auth.GET("/deleted", m.Handler.ListDeleted)
		auth.PUT("/:id", m.Handler.Update)
		auth.PUT("/:id/status", m.Handler.UpdateStatus)
		auth.DELETE("/:id", m.Handler.Delete)
		auth.PUT("/restore/:id", m.Handler.Restore)
		auth.PUT("/restore-all", m.Handler.RestoreAll)
		auth.DELETE("/permanent/:id", m.Handler.DeletePermanent)
		auth.DELETE("/permanent-all", m.Handler.DeleteAllPermanent)
	}
}
