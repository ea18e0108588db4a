package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/common/metrics"
)

// CallState is the lifecycle state of a call session
type CallState string

const (
	CallStateRinging   CallState = "ringing"
	CallStateConnected CallState = "connected"
	CallStateEnded     CallState = "ended"
	CallStateRejected  CallState = "rejected"
)

// CallSession is the relay-side record of one call-signaling exchange
// between exactly two user identities.
type CallSession struct {
	Caller    string
	Callee    string
	State     CallState
	CreatedAt time.Time

	ringTimer *time.Timer
}

func (s *CallSession) other(userID string) string {
	if userID == s.Caller {
		return s.Callee
	}
	return s.Caller
}

func (s *CallSession) involves(userID string) bool {
	return userID == s.Caller || userID == s.Callee
}

// CallManager coordinates offer/answer/ICE exchange and teardown for call
// attempts. At most one live session exists per unordered pair of
// identities; a second offer while one is live is dropped. Sessions in a
// terminal state are destroyed immediately, so "session exists" and "session
// is live" are the same thing.
//
// Malformed or out-of-order signaling (an answer with no matching offer, ICE
// after teardown) is logged and dropped, never an error: a disconnect racing
// with a signal must not crash the relay. Ringing calls time out relay-side
// rather than pending forever.
type CallManager struct {
	mu       sync.Mutex
	sessions map[string]*CallSession // keyed by unordered pair

	router      *Router
	ringTimeout time.Duration
	log         *logging.Logger
}

// NewCallManager creates a call signaling coordinator
func NewCallManager(router *Router, ringTimeout time.Duration, log *logging.Logger) *CallManager {
	if log == nil {
		log = logging.Get()
	}
	return &CallManager{
		sessions:    make(map[string]*CallSession),
		router:      router,
		ringTimeout: ringTimeout,
		log:         log,
	}
}

// pairKey builds the unordered pair key for two identities
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

// HandleOffer starts a call attempt from caller to callee. The session is
// created only if the offer actually reaches the callee: offers to offline
// users are dropped and never queued.
func (m *CallManager) HandleOffer(caller, callee string, offer json.RawMessage) {
	if caller == "" || callee == "" || caller == callee {
		m.log.Warn("dropping malformed call offer",
			zap.String("from", caller),
			zap.String("to", callee),
		)
		return
	}

	m.mu.Lock()
	key := pairKey(caller, callee)
	if _, busy := m.sessions[key]; busy {
		m.mu.Unlock()
		m.log.Warn("dropping call offer, session already live for pair",
			zap.String("from", caller),
			zap.String("to", callee),
		)
		return
	}

	delivered := m.router.Deliver(callee, EventCallOffer, CallOfferPayload{
		Offer: offer,
		To:    callee,
		From:  caller,
	})
	if delivered == 0 {
		m.mu.Unlock()
		m.log.Debug("call offer to offline user dropped",
			zap.String("from", caller),
			zap.String("to", callee),
		)
		return
	}

	session := &CallSession{
		Caller:    caller,
		Callee:    callee,
		State:     CallStateRinging,
		CreatedAt: time.Now(),
	}
	session.ringTimer = time.AfterFunc(m.ringTimeout, func() {
		m.expireRinging(caller, callee)
	})
	m.sessions[key] = session
	m.mu.Unlock()

	metrics.ActiveCalls.Inc()
	m.log.Info("call session created",
		zap.String("caller", caller),
		zap.String("callee", callee),
	)
}

// HandleAnswer accepts a ringing call. Only the callee of a ringing session
// may answer; anything else is dropped.
func (m *CallManager) HandleAnswer(from, to string, answer json.RawMessage) {
	m.mu.Lock()
	session, ok := m.sessions[pairKey(from, to)]
	if !ok || session.State != CallStateRinging || from != session.Callee {
		m.mu.Unlock()
		m.log.Warn("dropping call answer with no ringing session",
			zap.String("from", from),
			zap.String("to", to),
		)
		return
	}

	session.State = CallStateConnected
	session.stopRingTimer()
	m.mu.Unlock()

	m.router.Deliver(to, EventCallAnswer, CallAnswerPayload{
		Answer: answer,
		To:     to,
		From:   from,
	})
	m.log.Info("call connected",
		zap.String("caller", session.Caller),
		zap.String("callee", session.Callee),
	)
}

// HandleICECandidate relays a candidate 1:1 between the two parties. The
// candidate is forwarded verbatim while the session is live and dropped
// after teardown.
func (m *CallManager) HandleICECandidate(from, to string, candidate json.RawMessage) {
	m.mu.Lock()
	session, ok := m.sessions[pairKey(from, to)]
	if !ok || !session.involves(from) {
		m.mu.Unlock()
		m.log.Debug("dropping ICE candidate with no live session",
			zap.String("from", from),
			zap.String("to", to),
		)
		return
	}
	m.mu.Unlock()

	m.router.Deliver(to, EventICECandidate, ICECandidatePayload{
		Candidate: candidate,
		To:        to,
		From:      from,
	})
}

// HandleReject declines a ringing call. The caller is notified and the
// session destroyed.
func (m *CallManager) HandleReject(from, to string) {
	m.mu.Lock()
	key := pairKey(from, to)
	session, ok := m.sessions[key]
	if !ok || session.State != CallStateRinging || from != session.Callee {
		m.mu.Unlock()
		m.log.Warn("dropping call reject with no ringing session",
			zap.String("from", from),
			zap.String("to", to),
		)
		return
	}

	session.State = CallStateRejected
	session.stopRingTimer()
	delete(m.sessions, key)
	m.mu.Unlock()

	metrics.ActiveCalls.Dec()
	m.router.Deliver(session.Caller, EventCallRejected, CallControlPayload{
		To:   session.Caller,
		From: session.Callee,
	})
	m.log.Info("call rejected",
		zap.String("caller", session.Caller),
		zap.String("callee", session.Callee),
	)
}

// HandleHangup ends a live call from either party. The other party receives
// call_ended and the session is destroyed.
func (m *CallManager) HandleHangup(from, to string) {
	m.mu.Lock()
	key := pairKey(from, to)
	session, ok := m.sessions[key]
	if !ok || !session.involves(from) {
		m.mu.Unlock()
		m.log.Debug("dropping hangup with no live session",
			zap.String("from", from),
			zap.String("to", to),
		)
		return
	}

	session.State = CallStateEnded
	session.stopRingTimer()
	delete(m.sessions, key)
	m.mu.Unlock()

	metrics.ActiveCalls.Dec()
	m.router.Deliver(session.other(from), EventCallEnded, CallControlPayload{
		To:   session.other(from),
		From: from,
	})
	m.log.Info("call ended",
		zap.String("caller", session.Caller),
		zap.String("callee", session.Callee),
	)
}

// HandleDisconnect tears down every live session the user participates in,
// as if the user had hung up. Driven by the registry unregistering the
// user's last connection. Idempotent: a second disconnect finds no session.
func (m *CallManager) HandleDisconnect(userID string) {
	if userID == "" {
		return
	}

	m.mu.Lock()
	var ended []*CallSession
	for key, session := range m.sessions {
		if session.involves(userID) {
			session.State = CallStateEnded
			session.stopRingTimer()
			delete(m.sessions, key)
			ended = append(ended, session)
		}
	}
	m.mu.Unlock()

	for _, session := range ended {
		metrics.ActiveCalls.Dec()
		m.router.Deliver(session.other(userID), EventCallEnded, CallControlPayload{
			To:   session.other(userID),
			From: userID,
		})
		m.log.Info("call ended by disconnect",
			zap.String("caller", session.Caller),
			zap.String("callee", session.Callee),
			zap.String("disconnected", userID),
		)
	}
}

// UserOnline implements PresenceListener; a user coming online has no effect
// on call sessions.
func (m *CallManager) UserOnline(userID string) {}

// UserOffline implements PresenceListener: losing the last connection of a
// participant ends their calls.
func (m *CallManager) UserOffline(userID string) {
	m.HandleDisconnect(userID)
}

// expireRinging ends a call that was never answered. Both parties receive
// call_ended so the caller UI stops waiting and the callee UI stops ringing.
func (m *CallManager) expireRinging(caller, callee string) {
	m.mu.Lock()
	key := pairKey(caller, callee)
	session, ok := m.sessions[key]
	if !ok || session.State != CallStateRinging {
		m.mu.Unlock()
		return
	}

	session.State = CallStateEnded
	delete(m.sessions, key)
	m.mu.Unlock()

	metrics.ActiveCalls.Dec()
	m.router.Deliver(caller, EventCallEnded, CallControlPayload{To: caller, From: callee})
	m.router.Deliver(callee, EventCallEnded, CallControlPayload{To: callee, From: caller})
	m.log.Info("ringing call timed out",
		zap.String("caller", caller),
		zap.String("callee", callee),
	)
}

// ActiveSession returns the live session for a pair, if any
func (m *CallManager) ActiveSession(a, b string) (CallSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[pairKey(a, b)]
	if !ok {
		return CallSession{}, false
	}
	return *session, true
}

// ActiveCount returns the number of live sessions
func (m *CallManager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (s *CallSession) stopRingTimer() {
	if s.ringTimer != nil {
		s.ringTimer.Stop()
		s.ringTimer = nil
	}
}
