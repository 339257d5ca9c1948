package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/container"
	"github.com/oksasatya/task-manager-pro/internal/interface/middleware"
)

// DebugModule exposes expvar metrics, including the live websocket
// connection count.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func init() {
	expvar.Publish("ws_online", expvar.Func(func() any {
		if hub := container.GetHub(); hub != nil {
			return hub.Online()
		}
		return 0
	}))
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoint (expvar), rate-limited per IP
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
