package realtime

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewHub(NewRegistry(), logger, nil)
}

func TestDeliverToOfflineUserReturnsFalse(t *testing.T) {
	h := newTestHub()
	assert.False(t, h.Deliver("user-1", map[string]string{"title": "x"}))
}

func TestDeliverToRegisteredClient(t *testing.T) {
	h := newTestHub()
	cl := &client{id: "conn-a", send: make(chan Event, sendBuffer)}
	h.attach(cl)
	h.registry.Register("user-1", cl.id)

	payload := map[string]string{"title": "hello"}
	require.True(t, h.Deliver("user-1", payload))

	ev := <-cl.send
	assert.Equal(t, "notification", ev.Event)
	assert.Equal(t, payload, ev.Data)
}

func TestDeliverToFullBufferReturnsFalse(t *testing.T) {
	h := newTestHub()
	cl := &client{id: "conn-a", send: make(chan Event)}
	h.attach(cl)
	h.registry.Register("user-1", cl.id)

	// Nothing reading from the unbuffered channel: the push must be
	// dropped, not block.
	assert.False(t, h.Deliver("user-1", "payload"))
}

func TestDetachEvictsPresence(t *testing.T) {
	h := newTestHub()
	cl := &client{id: "conn-a", send: make(chan Event, 1)}
	h.attach(cl)
	h.registry.Register("user-1", cl.id)

	h.detach(cl)
	assert.False(t, h.Deliver("user-1", "payload"))
	assert.Equal(t, 0, h.Online())
}
