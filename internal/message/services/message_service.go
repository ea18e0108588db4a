package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/common/logging"
	"github.com/Gel788/metch-dating-app/internal/common/validation"
	"github.com/Gel788/metch-dating-app/internal/message/models"
	"github.com/Gel788/metch-dating-app/internal/message/repository"
	premiumrepo "github.com/Gel788/metch-dating-app/internal/premium/repository"
)

// Notifier fans a persisted message out to the receiver's live connections.
// Satisfied by the realtime relay; delivery is best-effort and an offline
// receiver is not an error.
type Notifier interface {
	RelayMessage(senderID, receiverID string, message json.RawMessage) int
}

// Service persists messages and pushes them to the relay
type Service struct {
	notifier Notifier
	log      *logging.Logger
}

// NewService creates the message service. notifier may be nil in tests.
func NewService(notifier Notifier, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Get()
	}
	return &Service{notifier: notifier, log: log}
}

// Send persists a message and relays it to the receiver's live connections.
// Non-subscribers are capped at FreeDailyMessageLimit sends per calendar day.
func (s *Service) Send(senderID string, req models.SendMessageRequest) (*models.Message, error) {
	if req.ReceiverID == senderID {
		return nil, errors.BadRequest("cannot message yourself")
	}
	if err := validation.ValidateStringRange(req.Content, 1, 5000); err != nil {
		return nil, errors.BadRequest("invalid content: " + err.Error())
	}

	active, err := premiumrepo.IsActive(senderID)
	if err != nil {
		return nil, err
	}
	if !active {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		sentToday, err := repository.CountSentSince(senderID, midnight)
		if err != nil {
			return nil, err
		}
		if sentToday >= models.FreeDailyMessageLimit {
			return nil, errors.Forbidden("daily message limit reached, upgrade to premium for unlimited messaging")
		}
	}

	message := &models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		CreatedAt:  time.Now(),
	}
	if err := repository.CreateMessage(message); err != nil {
		return nil, err
	}

	// Relay after the write: a delivered event always refers to a stored
	// message.
	if s.notifier != nil {
		payload, err := json.Marshal(message)
		if err != nil {
			s.log.WithError(err).Warn("failed to encode message for relay")
		} else {
			s.notifier.RelayMessage(senderID, req.ReceiverID, payload)
		}
	}

	return message, nil
}

// Conversation returns the history with one user and marks their messages
// to the caller as read
func (s *Service) Conversation(userID, withUserID string) (*models.ConversationResponse, error) {
	if withUserID == "" {
		return nil, errors.BadRequest("missing user id")
	}

	messages, err := repository.Conversation(userID, withUserID)
	if err != nil {
		return nil, err
	}
	if err := repository.MarkRead(withUserID, userID); err != nil {
		return nil, err
	}

	return &models.ConversationResponse{Messages: messages, Total: len(messages)}, nil
}

// Dialogues groups the caller's messages into one entry per correspondent,
// most recent conversation first
func (s *Service) Dialogues(userID string) ([]*models.Dialogue, error) {
	messages, err := repository.AllInvolving(userID)
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*models.Dialogue)
	order := make([]string, 0)
	for _, msg := range messages {
		otherID := msg.ReceiverID
		if msg.SenderID != userID {
			otherID = msg.SenderID
		}

		dialogue, seen := byUser[otherID]
		if !seen {
			dialogue = &models.Dialogue{UserID: otherID, LastMessage: msg}
			byUser[otherID] = dialogue
			order = append(order, otherID)
		}
		if msg.ReceiverID == userID && !msg.IsRead {
			dialogue.UnreadCount++
		}
	}

	dialogues := make([]*models.Dialogue, 0, len(order))
	for _, id := range order {
		dialogues = append(dialogues, byUser[id])
	}
	return dialogues, nil
}
