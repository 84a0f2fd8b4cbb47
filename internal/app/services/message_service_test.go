package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

func newMessageFixture() (*MessageService, *fakeMessageRepo, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	messageRepo := newFakeMessageRepo()
	return NewMessageService(messageRepo, userRepo, zerolog.Nop()), messageRepo, userRepo
}

func TestMessageSend(t *testing.T) {
	ctx := context.Background()
	svc, _, userRepo := newMessageFixture()

	admin := userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin})
	user := userRepo.add(&models.User{Name: "Youssef", Email: "y@example.com", Role: models.RoleUser})

	t.Run("RecordsUnreadMessage", func(t *testing.T) {
		message, err := svc.Send(ctx, &dto.SendMessageRequest{
			SenderID:   user.ID,
			ReceiverID: admin.ID,
			Content:    "Bonjour, j'ai une question",
		})
		require.NoError(t, err)
		assert.False(t, message.IsRead)
		assert.NotZero(t, message.ID)
	})

	t.Run("RejectsEmptyContent", func(t *testing.T) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: user.ID, ReceiverID: admin.ID, Content: "  "})
		assert.Error(t, err)
	})

	t.Run("RejectsSelfMessage", func(t *testing.T) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: user.ID, ReceiverID: user.ID, Content: "salut"})
		assert.Error(t, err)
	})

	t.Run("RejectsUnknownParticipant", func(t *testing.T) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: user.ID, ReceiverID: 999, Content: "salut"})
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestMessageGetConversation(t *testing.T) {
	ctx := context.Background()
	svc, messageRepo, userRepo := newMessageFixture()

	admin := userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin})
	user := userRepo.add(&models.User{Name: "Youssef", Email: "y@example.com", Role: models.RoleUser})

	send := func(from, to int64, content string) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: from, ReceiverID: to, Content: content})
		require.NoError(t, err)
	}
	send(user.ID, admin.ID, "Bonjour")
	send(admin.ID, user.ID, "Bonjour, comment puis-je aider ?")
	send(user.ID, admin.ID, "Ma question sur un défi")

	messages, err := svc.GetConversation(ctx, admin.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// Oldest first
	assert.Equal(t, "Bonjour", messages[0].Content)
	assert.Equal(t, "Ma question sur un défi", messages[2].Content)

	// Reading is a pure query, the unread flags stay untouched
	for _, message := range messageRepo.messages {
		assert.False(t, message.IsRead)
	}
}

func TestMessageMarkRead(t *testing.T) {
	ctx := context.Background()
	svc, messageRepo, userRepo := newMessageFixture()

	admin := userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin})
	user := userRepo.add(&models.User{Name: "Youssef", Email: "y@example.com", Role: models.RoleUser})

	send := func(from, to int64, content string) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: from, ReceiverID: to, Content: content})
		require.NoError(t, err)
	}
	send(user.ID, admin.ID, "Bonjour")
	send(user.ID, admin.ID, "Vous êtes là ?")
	send(admin.ID, user.ID, "Oui")

	require.NoError(t, svc.MarkRead(ctx, user.ID, admin.ID))

	// Only the user's messages to the admin flip, not the admin's reply
	for _, message := range messageRepo.messages {
		if message.SenderID == user.ID {
			assert.True(t, message.IsRead)
		} else {
			assert.False(t, message.IsRead)
		}
	}
}

func TestMessageGetAdminConversations(t *testing.T) {
	ctx := context.Background()
	svc, _, userRepo := newMessageFixture()

	admin := userRepo.add(&models.User{Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin})
	alice := userRepo.add(&models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser})
	bilel := userRepo.add(&models.User{Name: "Bilel", Email: "bilel@example.com", Role: models.RoleUser})

	send := func(from, to int64, content string) {
		_, err := svc.Send(ctx, &dto.SendMessageRequest{SenderID: from, ReceiverID: to, Content: content})
		require.NoError(t, err)
	}
	send(alice.ID, admin.ID, "Premier message")
	send(alice.ID, admin.ID, "Deuxième message")
	send(admin.ID, bilel.ID, "Bonjour Bilel")

	summaries, err := svc.GetAdminConversations(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Most recently active conversation first
	assert.Equal(t, bilel.ID, summaries[0].UserID)
	assert.Equal(t, alice.ID, summaries[1].UserID)

	byUser := make(map[int64]*dto.ConversationSummary)
	for _, summary := range summaries {
		byUser[summary.UserID] = summary
	}

	require.Contains(t, byUser, alice.ID)
	assert.Equal(t, "Deuxième message", byUser[alice.ID].LastMessage)
	assert.Equal(t, 2, byUser[alice.ID].UnreadCount)

	require.Contains(t, byUser, bilel.ID)
	assert.Equal(t, "Bonjour Bilel", byUser[bilel.ID].LastMessage)
	assert.Equal(t, 0, byUser[bilel.ID].UnreadCount)
}
