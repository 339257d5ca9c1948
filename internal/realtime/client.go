package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

// client is one live websocket connection. Its id is the connection id
// tracked by the presence registry; the logical user id is only known
// once the client sends a register event.
type client struct {
	id   string
	conn *websocket.Conn
	send chan Event
}

// readPump consumes inbound events until the connection closes, then
// detaches the client and evicts its presence entry.
func (cl *client) readPump(h *Hub) {
	defer func() {
		h.detach(cl)
		_ = cl.conn.Close()
	}()
	cl.conn.SetReadLimit(4096)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		var ev registerEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			continue
		}
		if ev.Event == "register" && ev.Data != "" {
			h.registry.Register(ev.Data, cl.id)
		}
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with pings.
func (cl *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
