package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/common/metrics"
)

// Connection is the registry's view of one live transport session.
// Send must preserve per-connection FIFO ordering and never block;
// it reports false when the message was dropped.
type Connection interface {
	ID() string
	Send(event string, payload interface{}) bool
}

// PresenceListener is notified on 0->1 and 1->0 transitions of a user's
// live connection count.
type PresenceListener interface {
	UserOnline(userID string)
	UserOffline(userID string)
}

type registration struct {
	userID string
	conn   Connection
}

// Registry maps user identities to their live connections. A user may hold
// several connections at once (multiple tabs or devices). All operations are
// safe for concurrent use and never fail: invalid input is a no-op.
type Registry struct {
	mu        sync.RWMutex
	byConn    map[string]registration
	byUser    map[string]map[string]Connection
	listeners []PresenceListener

	// notifyMu serializes each mutation with its listener dispatch, so
	// transitions are observed in the order the registry made them. Always
	// taken before mu; listeners must not call Register or Unregister.
	notifyMu sync.Mutex

	log *logging.Logger
}

// NewRegistry creates an empty connection registry
func NewRegistry(log *logging.Logger) *Registry {
	if log == nil {
		log = logging.Get()
	}
	return &Registry{
		byConn: make(map[string]registration),
		byUser: make(map[string]map[string]Connection),
		log:    log,
	}
}

// AddListener subscribes a presence listener. Not safe to call after
// connections start registering.
func (r *Registry) AddListener(l PresenceListener) {
	r.listeners = append(r.listeners, l)
}

// Register adds a connection under a user identity. Idempotent: registering
// the same connection twice is a no-op. The first live connection for a user
// fires the online transition.
func (r *Registry) Register(userID string, conn Connection) {
	if userID == "" || conn == nil || conn.ID() == "" {
		return
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	movedFrom := ""
	movedOffline := false

	r.mu.Lock()
	if existing, ok := r.byConn[conn.ID()]; ok {
		if existing.userID == userID {
			r.mu.Unlock()
			return
		}
		// Connection re-announced under a different identity: move it.
		movedFrom = existing.userID
		movedOffline = r.removeLocked(conn.ID())
	}

	r.byConn[conn.ID()] = registration{userID: userID, conn: conn}
	conns, ok := r.byUser[userID]
	if !ok {
		conns = make(map[string]Connection)
		r.byUser[userID] = conns
	}
	conns[conn.ID()] = conn
	wentOnline := len(conns) == 1
	r.mu.Unlock()

	if movedFrom == "" {
		metrics.ConnectedClients.Inc()
	}
	if movedOffline {
		metrics.OnlineUsers.Dec()
	}
	if wentOnline {
		metrics.OnlineUsers.Inc()
	}

	r.log.Debug("connection registered",
		zap.String("conn_id", conn.ID()),
		zap.String("user_id", userID),
	)

	if movedOffline {
		for _, l := range r.listeners {
			l.UserOffline(movedFrom)
		}
	}
	if wentOnline {
		for _, l := range r.listeners {
			l.UserOnline(userID)
		}
	}
}

// Unregister removes a connection, looked up by connection id since teardown
// is driven by transport close. Unknown ids are a no-op. Removing the user's
// last connection fires the offline transition.
func (r *Registry) Unregister(connID string) {
	if connID == "" {
		return
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	reg, ok := r.byConn[connID]
	if !ok {
		r.mu.Unlock()
		return
	}
	wentOffline := r.removeLocked(connID)
	r.mu.Unlock()

	metrics.ConnectedClients.Dec()
	if wentOffline {
		metrics.OnlineUsers.Dec()
	}

	r.log.Debug("connection unregistered",
		zap.String("conn_id", connID),
		zap.String("user_id", reg.userID),
	)

	if wentOffline {
		for _, l := range r.listeners {
			l.UserOffline(reg.userID)
		}
	}
}

// removeLocked deletes a connection and reports whether its user went offline.
// Caller holds the write lock.
func (r *Registry) removeLocked(connID string) bool {
	reg, ok := r.byConn[connID]
	if !ok {
		return false
	}
	delete(r.byConn, connID)

	conns := r.byUser[reg.userID]
	delete(conns, connID)
	if len(conns) == 0 {
		// No dangling keys for offline users.
		delete(r.byUser, reg.userID)
		return true
	}
	return false
}

// ConnectionsFor returns the current live connections for a user.
// Empty when the user is offline or unknown.
func (r *Registry) ConnectionsFor(userID string) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	if len(conns) == 0 {
		return nil
	}
	result := make([]Connection, 0, len(conns))
	for _, c := range conns {
		result = append(result, c)
	}
	return result
}

// AllConnections returns every live connection
func (r *Registry) AllConnections() []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Connection, 0, len(r.byConn))
	for _, reg := range r.byConn {
		result = append(result, reg.conn)
	}
	return result
}

// Online reports whether a user has at least one live connection
func (r *Registry) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

// UserFor returns the identity a connection announced, if any
func (r *Registry) UserFor(connID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byConn[connID]
	return reg.userID, ok
}

// ConnectionCount returns the number of live connections
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
