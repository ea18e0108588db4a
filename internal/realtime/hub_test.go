package realtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envelope(t *testing.T, event string, payload interface{}) Envelope {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return Envelope{Event: event, Data: data}
}

func joinHub(t *testing.T, hub *Hub, userID, connID string) *fakeConn {
	t.Helper()
	conn := newFakeConn(connID)
	hub.HandleEvent(conn, "", envelope(t, EventJoin, JoinPayload{UserID: userID}))
	return conn
}

func TestJoinThenSendMessageDelivered(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "bob", "b1")

	body := json.RawMessage(`{"id":"m1","content":"hello bob"}`)
	hub.HandleEvent(alice, "", envelope(t, EventSendMessage, SendMessagePayload{
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    body,
	}))

	// Receiver observes new_message with the identical payload.
	received := bob.eventsNamed(EventNewMessage)
	require.Len(t, received, 1)
	assert.JSONEq(t, string(body), string(received[0].Payload.(json.RawMessage)))

	// Sender gets the delivery acknowledgement.
	acks := alice.eventsNamed(EventMessageSent)
	require.Len(t, acks, 1)
	assert.True(t, acks[0].Payload.(MessageSentPayload).Success)
}

func TestEventBeforeJoinDropped(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	bob := joinHub(t, hub, "bob", "b1")

	stranger := newFakeConn("anon")
	hub.HandleEvent(stranger, "", envelope(t, EventSendMessage, SendMessagePayload{
		SenderID:   "alice",
		ReceiverID: "bob",
		Message:    json.RawMessage(`{}`),
	}))

	assert.Empty(t, bob.eventsNamed(EventNewMessage))
	assert.Empty(t, stranger.eventsNamed(EventMessageSent))
}

func TestJoinAuthenticatedIdentityWins(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	conn := newFakeConn("c1")
	hub.HandleEvent(conn, "alice", envelope(t, EventJoin, JoinPayload{UserID: "mallory"}))

	assert.True(t, hub.Registry.Online("alice"))
	assert.False(t, hub.Registry.Online("mallory"))
}

func TestJoinWithoutIdentityDropped(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	conn := newFakeConn("c1")
	hub.HandleEvent(conn, "", envelope(t, EventJoin, JoinPayload{}))

	assert.Equal(t, 0, hub.Registry.ConnectionCount())
}

func TestMalformedPayloadDropped(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "bob", "b1")

	hub.HandleEvent(alice, "", Envelope{Event: EventSendMessage, Data: json.RawMessage(`not json`)})

	assert.Empty(t, bob.eventsNamed(EventNewMessage))
}

func TestUnknownEventDropped(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")

	// Must not panic.
	hub.HandleEvent(alice, "", envelope(t, "mystery_event", map[string]string{"x": "y"}))
}

func TestTypingThroughHub(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "bob", "b1")

	hub.HandleEvent(alice, "", envelope(t, EventTyping, TypingPayload{
		UserID:      "alice",
		RecipientID: "bob",
		IsTyping:    true,
	}))
	hub.HandleEvent(alice, "", envelope(t, EventTyping, TypingPayload{
		UserID:      "alice",
		RecipientID: "bob",
		IsTyping:    false,
	}))

	events := bob.eventsNamed(EventUserTyping)
	require.Len(t, events, 2)
	assert.False(t, events[1].Payload.(UserTypingPayload).IsTyping)
}

func TestStatusChangeThroughHub(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "bob", "b1")

	hub.HandleEvent(alice, "", envelope(t, EventStatusChange, StatusChangePayload{
		UserID: "alice",
		Status: StatusOffline,
	}))

	events := bob.eventsNamed(EventUserStatus)
	var found bool
	for _, e := range events {
		p := e.Payload.(UserStatusPayload)
		if p.UserID == "alice" && p.Status == StatusOffline {
			found = true
		}
	}
	assert.True(t, found)

	// Unknown status values are protocol errors and dropped.
	before := len(bob.eventsNamed(EventUserStatus))
	hub.HandleEvent(alice, "", envelope(t, EventStatusChange, StatusChangePayload{
		UserID: "alice",
		Status: "invisible",
	}))
	assert.Len(t, bob.eventsNamed(EventUserStatus), before)
}

func TestCallFlowThroughHub(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "b", "b1")

	hub.HandleEvent(alice, "", envelope(t, EventCallOffer, CallOfferPayload{
		Offer: testOffer,
		To:    "b",
		From:  "alice",
	}))
	require.Len(t, bob.eventsNamed(EventCallOffer), 1)

	hub.HandleEvent(bob, "", envelope(t, EventCallAnswer, CallAnswerPayload{
		Answer: testAnswer,
		To:     "alice",
	}))
	require.Len(t, alice.eventsNamed(EventCallAnswer), 1)

	session, ok := hub.Calls.ActiveSession("alice", "b")
	require.True(t, ok)
	assert.Equal(t, CallStateConnected, session.State)

	hub.HandleEvent(bob, "", envelope(t, EventCallEnded, CallControlPayload{To: "alice"}))
	require.Len(t, alice.eventsNamed(EventCallEnded), 1)
	assert.Equal(t, 0, hub.Calls.ActiveCount())
}

func TestTransportCloseEndsCalls(t *testing.T) {
	hub := NewHub(time.Minute, nil)

	alice := joinHub(t, hub, "alice", "a1")
	bob := joinHub(t, hub, "bob", "b1")

	hub.HandleEvent(alice, "", envelope(t, EventCallOffer, CallOfferPayload{
		Offer: testOffer,
		To:    "bob",
		From:  "alice",
	}))
	hub.HandleEvent(bob, "", envelope(t, EventCallAnswer, CallAnswerPayload{To: "alice", Answer: testAnswer}))

	hub.HandleClose(bob)

	assert.Len(t, alice.eventsNamed(EventCallEnded), 1)
	assert.False(t, hub.Registry.Online("bob"))
	assert.Equal(t, 0, hub.Calls.ActiveCount())
}
