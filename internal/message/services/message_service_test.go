package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gel788/metch-dating-app/internal/common/database"
	apperrors "github.com/Gel788/metch-dating-app/internal/common/errors"
	"github.com/Gel788/metch-dating-app/internal/message/models"
	"github.com/Gel788/metch-dating-app/internal/message/repository"
	premiummodels "github.com/Gel788/metch-dating-app/internal/premium/models"
)

type relayedMessage struct {
	SenderID   string
	ReceiverID string
	Payload    json.RawMessage
}

type fakeNotifier struct {
	relayed []relayedMessage
}

func (f *fakeNotifier) RelayMessage(senderID, receiverID string, message json.RawMessage) int {
	f.relayed = append(f.relayed, relayedMessage{senderID, receiverID, message})
	return 1
}

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, database.InitWithType("sqlite", ":memory:"))
	require.NoError(t, database.DB.AutoMigrate(&models.Message{}, &premiummodels.Premium{}))
}

func activatePremium(t *testing.T, userID string) {
	t.Helper()
	premium := &premiummodels.Premium{
		ID:       uuid.New().String(),
		UserID:   userID,
		Plan:     "BASIC",
		EndDate:  time.Now().AddDate(0, 1, 0),
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(premium).Error)
}

func TestSendPersistsThenRelays(t *testing.T) {
	setupTestDB(t)
	notifier := &fakeNotifier{}
	service := NewService(notifier, nil)

	message, err := service.Send("alice", models.SendMessageRequest{
		ReceiverID: "bob",
		Content:    "hello bob",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, message.ID)
	assert.False(t, message.IsRead)

	// The persisted row exists and the relay carried the stored message.
	stored, err := repository.Conversation("alice", "bob")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.Len(t, notifier.relayed, 1)
	assert.Equal(t, "alice", notifier.relayed[0].SenderID)
	assert.Equal(t, "bob", notifier.relayed[0].ReceiverID)

	var relayed models.Message
	require.NoError(t, json.Unmarshal(notifier.relayed[0].Payload, &relayed))
	assert.Equal(t, message.ID, relayed.ID)
	assert.Equal(t, "hello bob", relayed.Content)
}

func TestSendToSelfRejected(t *testing.T) {
	setupTestDB(t)
	service := NewService(&fakeNotifier{}, nil)

	_, err := service.Send("alice", models.SendMessageRequest{
		ReceiverID: "alice",
		Content:    "hi me",
	})

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	setupTestDB(t)
	notifier := &fakeNotifier{}
	service := NewService(notifier, nil)

	_, err := service.Send("alice", models.SendMessageRequest{
		ReceiverID: "bob",
		Content:    "",
	})

	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	// Nothing stored, nothing relayed.
	stored, err := repository.Conversation("alice", "bob")
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, notifier.relayed)
}

func TestFreeTierDailyLimit(t *testing.T) {
	setupTestDB(t)
	notifier := &fakeNotifier{}
	service := NewService(notifier, nil)

	for i := 0; i < models.FreeDailyMessageLimit; i++ {
		_, err := service.Send("alice", models.SendMessageRequest{
			ReceiverID: "bob",
			Content:    "spam",
		})
		require.NoError(t, err)
	}

	_, err := service.Send("alice", models.SendMessageRequest{
		ReceiverID: "bob",
		Content:    "one too many",
	})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.Status)

	// The rejected message was not relayed.
	assert.Len(t, notifier.relayed, models.FreeDailyMessageLimit)
}

func TestPremiumSenderUnlimited(t *testing.T) {
	setupTestDB(t)
	service := NewService(&fakeNotifier{}, nil)
	activatePremium(t, "alice")

	for i := 0; i < models.FreeDailyMessageLimit+5; i++ {
		_, err := service.Send("alice", models.SendMessageRequest{
			ReceiverID: "bob",
			Content:    "premium message",
		})
		require.NoError(t, err)
	}
}

func TestConversationMarksIncomingRead(t *testing.T) {
	setupTestDB(t)
	service := NewService(&fakeNotifier{}, nil)

	_, err := service.Send("alice", models.SendMessageRequest{ReceiverID: "bob", Content: "first"})
	require.NoError(t, err)
	_, err = service.Send("bob", models.SendMessageRequest{ReceiverID: "alice", Content: "second"})
	require.NoError(t, err)

	// Bob opens the conversation: alice's messages to him become read,
	// his own stay as they were.
	conversation, err := service.Conversation("bob", "alice")
	require.NoError(t, err)
	require.Equal(t, 2, conversation.Total)
	assert.Equal(t, "first", conversation.Messages[0].Content)

	reloaded, err := repository.Conversation("alice", "bob")
	require.NoError(t, err)
	for _, msg := range reloaded {
		if msg.SenderID == "alice" {
			assert.True(t, msg.IsRead)
			assert.NotNil(t, msg.ReadAt)
		} else {
			assert.False(t, msg.IsRead)
		}
	}
}

func TestDialoguesGroupByCorrespondent(t *testing.T) {
	setupTestDB(t)
	service := NewService(&fakeNotifier{}, nil)

	_, err := service.Send("alice", models.SendMessageRequest{ReceiverID: "bob", Content: "to bob"})
	require.NoError(t, err)
	_, err = service.Send("carol", models.SendMessageRequest{ReceiverID: "alice", Content: "from carol 1"})
	require.NoError(t, err)
	_, err = service.Send("carol", models.SendMessageRequest{ReceiverID: "alice", Content: "from carol 2"})
	require.NoError(t, err)

	dialogues, err := service.Dialogues("alice")
	require.NoError(t, err)
	require.Len(t, dialogues, 2)

	byUser := make(map[string]*models.Dialogue)
	for _, d := range dialogues {
		byUser[d.UserID] = d
	}
	require.Contains(t, byUser, "bob")
	require.Contains(t, byUser, "carol")
	assert.Equal(t, 0, byUser["bob"].UnreadCount)
	assert.Equal(t, 2, byUser["carol"].UnreadCount)
	assert.Equal(t, "from carol 2", byUser["carol"].LastMessage.Content)
}
