package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceListener records presence transitions in dispatch order
type sequenceListener struct {
	mu     sync.Mutex
	events []string
}

func (l *sequenceListener) UserOnline(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, userID+" online")
}

func (l *sequenceListener) UserOffline(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, userID+" offline")
}

func (l *sequenceListener) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func TestRegisterAndConnectionsFor(t *testing.T) {
	reg := NewRegistry(nil)
	conn := newFakeConn("c1")

	reg.Register("alice", conn)

	conns := reg.ConnectionsFor("alice")
	assert.Len(t, conns, 1)
	assert.Equal(t, "c1", conns[0].ID())
	assert.True(t, reg.Online("alice"))
}

func TestRegisterIdempotent(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	conn := newFakeConn("c1")
	reg.Register("alice", conn)
	reg.Register("alice", conn)
	reg.Register("alice", conn)

	assert.Len(t, reg.ConnectionsFor("alice"), 1)
	assert.Equal(t, 1, listener.onlineCount("alice"))
}

func TestRegisterInvalidInputsNoop(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Register("", newFakeConn("c1"))
	reg.Register("alice", nil)
	reg.Register("alice", newFakeConn(""))

	assert.Equal(t, 0, reg.ConnectionCount())
	assert.False(t, reg.Online("alice"))
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	// Must not panic or fire transitions.
	reg.Unregister("never-registered")
	reg.Unregister("")

	assert.Equal(t, 0, listener.offlineCount("alice"))
}

func TestMultiDeviceRegistration(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	reg.Register("alice", newFakeConn("tab1"))
	reg.Register("alice", newFakeConn("tab2"))
	reg.Register("alice", newFakeConn("phone"))

	assert.Len(t, reg.ConnectionsFor("alice"), 3)
	// Online fires only on the 0->1 transition, not per connection.
	assert.Equal(t, 1, listener.onlineCount("alice"))
}

func TestUnregisterRemovesStaleIDs(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Register("alice", newFakeConn("c1"))
	reg.Register("alice", newFakeConn("c2"))
	reg.Unregister("c1")

	conns := reg.ConnectionsFor("alice")
	assert.Len(t, conns, 1)
	assert.Equal(t, "c2", conns[0].ID())
}

func TestOfflineTransitionOnLastConnection(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	reg.Register("alice", newFakeConn("c1"))
	reg.Register("alice", newFakeConn("c2"))

	reg.Unregister("c1")
	assert.Equal(t, 0, listener.offlineCount("alice"))
	assert.True(t, reg.Online("alice"))

	reg.Unregister("c2")
	assert.Equal(t, 1, listener.offlineCount("alice"))
	assert.False(t, reg.Online("alice"))
	assert.Empty(t, reg.ConnectionsFor("alice"))

	// Idempotent teardown: a second unregister does nothing.
	reg.Unregister("c2")
	assert.Equal(t, 1, listener.offlineCount("alice"))
}

func TestOnlineAgainAfterOffline(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	reg.Register("alice", newFakeConn("c1"))
	reg.Unregister("c1")
	reg.Register("alice", newFakeConn("c2"))

	assert.Equal(t, 2, listener.onlineCount("alice"))
	assert.Equal(t, 1, listener.offlineCount("alice"))
}

func TestPresenceTransitionOrderUnderChurn(t *testing.T) {
	reg := NewRegistry(nil)
	listener := &sequenceListener{}
	reg.AddListener(listener)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				connID := fmt.Sprintf("w%d-c%d", worker, i)
				reg.Register("alice", newFakeConn(connID))
				reg.Unregister(connID)
			}
		}(worker)
	}
	wg.Wait()

	// Transitions must strictly alternate: an offline for a connect cycle
	// may never be observed after the online of the next cycle.
	events := listener.snapshot()
	require.NotEmpty(t, events)
	assert.Equal(t, "alice online", events[0])
	for i := 1; i < len(events); i++ {
		assert.NotEqual(t, events[i-1], events[i], "transition %d repeats %q", i, events[i])
	}
	assert.Equal(t, "alice offline", events[len(events)-1])
	assert.False(t, reg.Online("alice"))
}

func TestReannounceUnderNewIdentity(t *testing.T) {
	reg := NewRegistry(nil)
	listener := newCountingListener()
	reg.AddListener(listener)

	conn := newFakeConn("c1")
	reg.Register("alice", conn)
	reg.Register("bob", conn)

	assert.False(t, reg.Online("alice"))
	assert.True(t, reg.Online("bob"))
	assert.Equal(t, 1, listener.offlineCount("alice"))
	assert.Equal(t, 1, listener.onlineCount("bob"))

	userID, ok := reg.UserFor("c1")
	require.True(t, ok)
	assert.Equal(t, "bob", userID)
	assert.Equal(t, 1, reg.ConnectionCount())
}

func TestUserFor(t *testing.T) {
	reg := NewRegistry(nil)
	reg.Register("alice", newFakeConn("c1"))

	userID, ok := reg.UserFor("c1")
	assert.True(t, ok)
	assert.Equal(t, "alice", userID)

	_, ok = reg.UserFor("unknown")
	assert.False(t, ok)
}
