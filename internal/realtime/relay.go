package realtime

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
)

// Relay delivers chat messages and typing indicators to the addressed user's
// live connections. It is pure transport: the message store persists content
// before the relay is invoked, and the relay never mutates persisted state.
type Relay struct {
	router *Router
	log    *logging.Logger
}

// NewRelay creates a message relay over a router
func NewRelay(router *Router, log *logging.Logger) *Relay {
	if log == nil {
		log = logging.Get()
	}
	return &Relay{router: router, log: log}
}

// RelayMessage fans an already-persisted chat message out to the receiver's
// connections. The message body is delivered verbatim. Returns the number of
// connections reached; zero means the receiver is offline and the event is
// dropped (the receiver picks the message up from the store on reconnect).
//
// The sender's other devices are not echoed to; clients refresh from the
// store instead.
func (r *Relay) RelayMessage(senderID, receiverID string, message json.RawMessage) int {
	if senderID == "" || receiverID == "" {
		r.log.Warn("dropping message with missing addressing",
			zap.String("sender_id", senderID),
			zap.String("receiver_id", receiverID),
		)
		return 0
	}

	return r.router.Deliver(receiverID, EventNewMessage, message)
}

// RelayTyping delivers a transient typing indicator. Best-effort: safe to
// drop or coalesce under backpressure since it is purely advisory UI state.
func (r *Relay) RelayTyping(senderID, receiverID string, isTyping bool) int {
	if senderID == "" || receiverID == "" {
		return 0
	}

	return r.router.Deliver(receiverID, EventUserTyping, UserTypingPayload{
		UserID:   senderID,
		IsTyping: isTyping,
	})
}
