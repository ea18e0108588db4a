package realtime

import "encoding/json"

// Client -> relay event names
const (
	EventJoin         = "join"
	EventSendMessage  = "send_message"
	EventTyping       = "typing"
	EventStatusChange = "status_change"
	EventCallOffer    = "call_offer"
	EventCallAnswer   = "call_answer"
	EventICECandidate = "ice_candidate"
	EventCallRejected = "call_rejected"
	EventCallEnded    = "call_ended"
)

// Relay -> client event names
const (
	EventNewMessage  = "new_message"
	EventUserTyping  = "user_typing"
	EventUserStatus  = "user_status"
	EventMessageSent = "message_sent"
)

// Presence status values
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Envelope is the wire framing for every event in both directions
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinPayload registers the connection under a user identity
type JoinPayload struct {
	UserID string `json:"userIdentity"`
}

// SendMessagePayload relays a chat message that the store has already persisted
type SendMessagePayload struct {
	SenderID   string          `json:"senderId"`
	ReceiverID string          `json:"receiverId"`
	Message    json.RawMessage `json:"message"`
}

// TypingPayload relays a transient typing indicator
type TypingPayload struct {
	UserID      string `json:"userId"`
	RecipientID string `json:"recipientId"`
	IsTyping    bool   `json:"isTyping"`
}

// StatusChangePayload broadcasts an explicit presence change
type StatusChangePayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// UserStatusPayload is the presence event fanned out to clients
type UserStatusPayload struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

// UserTypingPayload is the typing event delivered to the recipient
type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// CallOfferPayload starts a call attempt; Offer is the SDP, relayed verbatim
type CallOfferPayload struct {
	Offer json.RawMessage `json:"offer"`
	To    string          `json:"to"`
	From  string          `json:"from"`
}

// CallAnswerPayload accepts a pending call
type CallAnswerPayload struct {
	Answer json.RawMessage `json:"answer"`
	To     string          `json:"to"`
	From   string          `json:"from,omitempty"`
}

// ICECandidatePayload is relayed 1:1 between the two call parties
type ICECandidatePayload struct {
	Candidate json.RawMessage `json:"candidate"`
	To        string          `json:"to"`
	From      string          `json:"from,omitempty"`
}

// CallControlPayload covers call_rejected and call_ended
type CallControlPayload struct {
	To   string `json:"to"`
	From string `json:"from,omitempty"`
}

// MessageSentPayload is the delivery acknowledgement returned to the sender
type MessageSentPayload struct {
	Success bool `json:"success"`
}
