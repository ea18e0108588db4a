package realtime

import (
	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
)

// Presence derives online/offline status from registry transitions and fans
// the change out to all connected clients. Status is advisory: nothing is
// persisted, and a transition nobody observes is lost.
//
// The broadcast is deliberately unscoped. Scoping it to mutual matches is
// the known production follow-up.
type Presence struct {
	router *Router
	log    *logging.Logger
}

// NewPresence creates a presence tracker over a router
func NewPresence(router *Router, log *logging.Logger) *Presence {
	if log == nil {
		log = logging.Get()
	}
	return &Presence{router: router, log: log}
}

// UserOnline implements PresenceListener
func (p *Presence) UserOnline(userID string) {
	p.BroadcastStatus(userID, StatusOnline)
}

// UserOffline implements PresenceListener
func (p *Presence) UserOffline(userID string) {
	p.BroadcastStatus(userID, StatusOffline)
}

// BroadcastStatus fans a presence transition out to all connected clients
func (p *Presence) BroadcastStatus(userID, status string) {
	if userID == "" {
		return
	}

	p.log.Debug("presence transition",
		zap.String("user_id", userID),
		zap.String("status", status),
	)

	p.router.Broadcast(EventUserStatus, UserStatusPayload{
		UserID: userID,
		Status: status,
	})
}
