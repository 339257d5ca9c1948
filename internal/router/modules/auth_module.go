package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/container"
	handlers "github.com/oksasatya/task-manager-pro/internal/interface/http"
	"github.com/oksasatya/task-manager-pro/internal/interface/middleware"
	"github.com/oksasatya/task-manager-pro/pkg/helpers"
)

// AuthModule wires registration and session routes.
// Public: POST /api/auth/register, POST /api/auth/login, POST /api/auth/refresh
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	grp := rg.Group("/auth")
	grp.POST("/register", registerLimiter, m.Handler.Register)
	grp.POST("/login", loginLimiter, m.Handler.Login)
	grp.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := grp.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.POST("/logout", m.Handler.Logout)
}
