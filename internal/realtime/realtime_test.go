package realtime

import (
	"sync"
)

// fakeConn records delivered events in order for assertions
type fakeConn struct {
	id   string
	full bool // simulate a saturated send buffer

	mu     sync.Mutex
	events []recordedEvent
}

type recordedEvent struct {
	Event   string
	Payload interface{}
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string {
	return c.id
}

func (c *fakeConn) Send(event string, payload interface{}) bool {
	if c.full {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, recordedEvent{Event: event, Payload: payload})
	return true
}

func (c *fakeConn) recorded() []recordedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]recordedEvent, len(c.events))
	copy(out, c.events)
	return out
}

func (c *fakeConn) eventsNamed(event string) []recordedEvent {
	var out []recordedEvent
	for _, e := range c.recorded() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// countingListener counts presence transitions per user
type countingListener struct {
	mu      sync.Mutex
	online  map[string]int
	offline map[string]int
}

func newCountingListener() *countingListener {
	return &countingListener{
		online:  make(map[string]int),
		offline: make(map[string]int),
	}
}

func (l *countingListener) UserOnline(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.online[userID]++
}

func (l *countingListener) UserOffline(userID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.offline[userID]++
}

func (l *countingListener) onlineCount(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.online[userID]
}

func (l *countingListener) offlineCount(userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.offline[userID]
}
