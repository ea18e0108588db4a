package realtime

import (
	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/common/metrics"
)

// Router resolves a user identity to its live connections and delivers
// events to all of them. Delivery is best-effort and online-only: offline
// targets are a silent no-op, never an error. Durable delivery is the
// message store's job via fetch-on-reconnect.
type Router struct {
	registry *Registry
	log      *logging.Logger
}

// NewRouter creates a router over a connection registry
func NewRouter(registry *Registry, log *logging.Logger) *Router {
	if log == nil {
		log = logging.Get()
	}
	return &Router{registry: registry, log: log}
}

// Deliver sends an event to every live connection of the target user and
// returns the number of connections it was handed to. Ordering is FIFO per
// connection; no ordering holds across different connections.
func (r *Router) Deliver(userID, event string, payload interface{}) int {
	conns := r.registry.ConnectionsFor(userID)
	if len(conns) == 0 {
		metrics.EventsDropped.WithLabelValues(event, "offline").Inc()
		return 0
	}

	delivered := 0
	for _, conn := range conns {
		if conn.Send(event, payload) {
			delivered++
		} else {
			metrics.EventsDropped.WithLabelValues(event, "backpressure").Inc()
			r.log.Warn("dropped event, send buffer full",
				zap.String("event", event),
				zap.String("user_id", userID),
				zap.String("conn_id", conn.ID()),
			)
		}
	}

	if delivered > 0 {
		metrics.EventsRelayed.WithLabelValues(event).Inc()
	}
	return delivered
}

// Broadcast sends an event to every live connection of every user
func (r *Router) Broadcast(event string, payload interface{}) int {
	delivered := 0
	for _, conn := range r.registry.AllConnections() {
		if conn.Send(event, payload) {
			delivered++
		} else {
			metrics.EventsDropped.WithLabelValues(event, "backpressure").Inc()
		}
	}
	if delivered > 0 {
		metrics.EventsRelayed.WithLabelValues(event).Inc()
	}
	return delivered
}
