package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/task-manager-pro/internal/realtime"
)

// RealtimeModule mounts the websocket endpoint. The upgrade itself is
// unauthenticated; a connection only starts receiving pushes after the
// client sends its register event.
type RealtimeModule struct {
	Hub *realtime.Hub
}

func NewRealtimeModule(hub *realtime.Hub) *RealtimeModule {
	return &RealtimeModule{Hub: hub}
}

func (m *RealtimeModule) Register(rg *gin.RouterGroup) {
	rg.GET("/ws", m.Hub.HandleWS)
}
