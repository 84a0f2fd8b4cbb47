package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/pkg/apperrors"
)

// MessageRepository is the messaging persistence surface the message service needs.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	GetConversation(ctx context.Context, userA, userB int64) ([]*models.Message, error)
	GetAdminConversations(ctx context.Context, adminID int64) ([]*dto.ConversationSummary, error)
	MarkConversationRead(ctx context.Context, senderID, receiverID int64) error
}

// MessageUserRepository checks message participants.
type MessageUserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// MessageService handles direct messages between users and admins
type MessageService struct {
	messageRepo MessageRepository
	userRepo    MessageUserRepository
	logger      zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(messageRepo MessageRepository, userRepo MessageUserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Send records a new message after checking that both participants exist
func (s *MessageService) Send(ctx context.Context, req *dto.SendMessageRequest) (*models.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewBadRequestError("Message content cannot be empty")
	}
	if req.SenderID == req.ReceiverID {
		return nil, apperrors.NewBadRequestError("Sender and receiver must differ")
	}

	if _, err := s.userRepo.GetByID(ctx, req.SenderID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, req.ReceiverID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
		IsRead:     false,
	}

	created, err := s.messageRepo.Create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("messageId", created.ID).
		Int64("senderId", req.SenderID).
		Int64("receiverId", req.ReceiverID).
		Msg("Message sent")

	return created, nil
}

// GetConversation retrieves the full exchange between two users, oldest
// first. Reading does not touch the unread flags; clients call MarkRead
// explicitly.
func (s *MessageService) GetConversation(ctx context.Context, userA, userB int64) ([]*models.Message, error) {
	return s.messageRepo.GetConversation(ctx, userA, userB)
}

// MarkRead flips the read flag on every unread message sent by userID to
// adminID.
func (s *MessageService) MarkRead(ctx context.Context, userID, adminID int64) error {
	if err := s.messageRepo.MarkConversationRead(ctx, userID, adminID); err != nil {
		return err
	}

	s.logger.Info().Int64("userId", userID).Int64("adminId", adminID).Msg("Conversation marked as read")
	return nil
}

// GetAdminConversations retrieves the admin inbox: one summary per
// counterpart with the latest message and the unread count.
func (s *MessageService) GetAdminConversations(ctx context.Context, adminID int64) ([]*dto.ConversationSummary, error) {
	return s.messageRepo.GetAdminConversations(ctx, adminID)
}
