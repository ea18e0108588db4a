package realtime

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
)

// Hub is the presence and relay hub every connected session attaches to.
// It owns the registry, router, presence tracker, message relay and call
// manager, and routes decoded client events to them. The hub is an
// explicitly constructed instance with lifecycle tied to the process, not a
// module-level singleton.
type Hub struct {
	Registry *Registry
	Router   *Router
	Presence *Presence
	Relay    *Relay
	Calls    *CallManager

	log *logging.Logger
}

// NewHub wires the relay components together. Registry transitions feed both
// the presence tracker and call teardown.
func NewHub(ringTimeout time.Duration, log *logging.Logger) *Hub {
	if log == nil {
		log = logging.Get()
	}

	registry := NewRegistry(log)
	router := NewRouter(registry, log)
	presence := NewPresence(router, log)
	relay := NewRelay(router, log)
	calls := NewCallManager(router, ringTimeout, log)

	registry.AddListener(presence)
	registry.AddListener(calls)

	return &Hub{
		Registry: registry,
		Router:   router,
		Presence: presence,
		Relay:    relay,
		Calls:    calls,
		log:      log,
	}
}

// HandleEvent dispatches one decoded client event. authUserID is the
// identity established by the transport's session lookup; empty when the
// connection is unauthenticated. Protocol errors are logged and dropped,
// never returned: a malformed event must not take the relay down.
func (h *Hub) HandleEvent(conn Connection, authUserID string, env Envelope) {
	if env.Event == EventJoin {
		h.handleJoin(conn, authUserID, env.Data)
		return
	}

	// Every other event requires an announced identity.
	userID, ok := h.Registry.UserFor(conn.ID())
	if !ok {
		h.log.Warn("dropping event from unannounced connection",
			zap.String("event", env.Event),
			zap.String("conn_id", conn.ID()),
		)
		return
	}

	switch env.Event {
	case EventSendMessage:
		var p SendMessagePayload
		if !h.decode(env, &p) {
			return
		}
		if p.SenderID != "" && p.SenderID != userID {
			h.log.Warn("sender id does not match announced identity",
				zap.String("claimed", p.SenderID),
				zap.String("announced", userID),
			)
		}
		h.Relay.RelayMessage(userID, p.ReceiverID, p.Message)
		conn.Send(EventMessageSent, MessageSentPayload{Success: true})

	case EventTyping:
		var p TypingPayload
		if !h.decode(env, &p) {
			return
		}
		h.Relay.RelayTyping(userID, p.RecipientID, p.IsTyping)

	case EventStatusChange:
		var p StatusChangePayload
		if !h.decode(env, &p) {
			return
		}
		if p.Status != StatusOnline && p.Status != StatusOffline {
			h.log.Warn("dropping status change with unknown status",
				zap.String("status", p.Status),
			)
			return
		}
		h.Presence.BroadcastStatus(userID, p.Status)

	case EventCallOffer:
		var p CallOfferPayload
		if !h.decode(env, &p) {
			return
		}
		h.Calls.HandleOffer(userID, p.To, p.Offer)

	case EventCallAnswer:
		var p CallAnswerPayload
		if !h.decode(env, &p) {
			return
		}
		h.Calls.HandleAnswer(userID, p.To, p.Answer)

	case EventICECandidate:
		var p ICECandidatePayload
		if !h.decode(env, &p) {
			return
		}
		h.Calls.HandleICECandidate(userID, p.To, p.Candidate)

	case EventCallRejected:
		var p CallControlPayload
		if !h.decode(env, &p) {
			return
		}
		h.Calls.HandleReject(userID, p.To)

	case EventCallEnded:
		var p CallControlPayload
		if !h.decode(env, &p) {
			return
		}
		h.Calls.HandleHangup(userID, p.To)

	default:
		h.log.Warn("unknown event type",
			zap.String("event", env.Event),
			zap.String("conn_id", conn.ID()),
		)
	}
}

// handleJoin registers the connection under a user identity. When the
// transport authenticated the session, that identity wins over whatever the
// payload claims.
func (h *Hub) handleJoin(conn Connection, authUserID string, data json.RawMessage) {
	var p JoinPayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			h.log.Warn("dropping malformed join payload",
				zap.String("conn_id", conn.ID()),
				zap.Error(err),
			)
			return
		}
	}

	userID := authUserID
	if userID == "" {
		userID = p.UserID
	} else if p.UserID != "" && p.UserID != userID {
		h.log.Warn("join identity does not match session, using session identity",
			zap.String("claimed", p.UserID),
			zap.String("session", userID),
		)
	}

	if userID == "" {
		h.log.Warn("dropping join with no identity", zap.String("conn_id", conn.ID()))
		return
	}

	h.Registry.Register(userID, conn)
}

// HandleClose tears down a connection after transport close or failure.
// Registry cleanup drives the presence transition and, when this was the
// user's last connection, call teardown.
func (h *Hub) HandleClose(conn Connection) {
	h.Registry.Unregister(conn.ID())
}

func (h *Hub) decode(env Envelope, target interface{}) bool {
	if err := json.Unmarshal(env.Data, target); err != nil {
		h.log.Warn("dropping malformed event payload",
			zap.String("event", env.Event),
			zap.Error(err),
		)
		return false
	}
	return true
}
