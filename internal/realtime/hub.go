package realtime

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Event is the wire envelope for both directions of the channel.
// Client -> server: {"event":"register","data":"<user id>"}
// Server -> client: {"event":"notification","data":{...}}
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type registerEvent struct {
	Event string `json:"event"`
	Data  string `json:"data"`
}

// Hub owns the websocket connections and the presence registry, and is
// the delivery relay: a push to an offline or unresponsive recipient is
// dropped silently, the stored notification remains the system of
// record.
type Hub struct {
	registry *Registry
	logger   *logrus.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(registry *Registry, logger *logrus.Logger, allowedOrigins []string) *Hub {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &Hub{
		registry: registry,
		logger:   logger,
		clients:  make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// HandleWS upgrades the request and runs the connection until it dies.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	h.attach(cl)
	go cl.writePump()
	cl.readPump(h)
}

// Deliver pushes a notification payload to the recipient's live
// connection. It returns false, without error, when the recipient is
// offline or the connection cannot accept the payload.
func (h *Hub) Deliver(userID string, payload interface{}) bool {
	connID, ok := h.registry.Lookup(userID)
	if !ok {
		return false
	}
	// The read lock also orders this send against detach, which takes
	// the write lock before closing the client's send channel.
	h.mu.RLock()
	defer h.mu.RUnlock()
	cl := h.clients[connID]
	if cl == nil {
		return false
	}
	select {
	case cl.send <- Event{Event: "notification", Data: payload}:
		return true
	default:
		// Send buffer full: connection is dead or wedged, treat as offline.
		h.logger.WithField("user_id", userID).Debug("dropping push, send buffer full")
		return false
	}
}

// Online reports how many users currently have a registered connection.
func (h *Hub) Online() int {
	return h.registry.Online()
}

func (h *Hub) attach(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	h.mu.Unlock()
}

func (h *Hub) detach(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	close(cl.send)
	h.mu.Unlock()
	h.registry.Unregister(cl.id)
}
