package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Register("user-1", "conn-a")

	connID, ok := r.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, "conn-a", connID)

	_, ok = r.Lookup("user-2")
	assert.False(t, ok)
}

func TestReRegisterLastWriterWins(t *testing.T) {
	r := NewRegistry()
	r.Register("user-1", "conn-a")
	r.Register("user-1", "conn-b")

	connID, ok := r.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, "conn-b", connID)
	assert.Equal(t, 1, r.Online())
}

func TestUnregisterRemovesOnlyMatchingConnection(t *testing.T) {
	r := NewRegistry()
	r.Register("user-1", "conn-a")
	r.Register("user-1", "conn-b")

	// Stale disconnect from the replaced connection must not evict the
	// live one.
	r.Unregister("conn-a")
	connID, ok := r.Lookup("user-1")
	assert.True(t, ok)
	assert.Equal(t, "conn-b", connID)

	r.Unregister("conn-b")
	_, ok = r.Lookup("user-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Online())
}

func TestOnlineCountsDistinctUsers(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, 0, r.Online())
	r.Register("user-1", "conn-a")
	r.Register("user-2", "conn-b")
	assert.Equal(t, 2, r.Online())
}
