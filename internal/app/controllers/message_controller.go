package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
	"github.com/ybamri/recycleapp/internal/app/services"
	"github.com/ybamri/recycleapp/internal/middleware"
	"github.com/ybamri/recycleapp/internal/pkg/helpers"
)

// MessageController handles direct messaging operations
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Send records a new message
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 404 {object} dto.ErrorResponse "Sender or receiver not found"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	message, err := c.messageService.Send(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}

// GetConversation retrieves the exchange between a user and an admin
// @Summary Get a conversation
// @Description Returns every message between the two users, oldest first. Reading does not change the unread flags.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "First participant ID"
// @Param adminId path int true "Second participant ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Router /messages/conversation/{userId}/{adminId} [get]
func (c *MessageController) GetConversation(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	adminID, err := helpers.ParseID(ctx.Param("adminId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	messages, err := c.messageService.GetConversation(ctx.Request.Context(), userID, adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages))
}

// MarkRead marks a conversation as read
// @Summary Mark a conversation as read
// @Description Flips the read flag on every unread message sent by the user to the admin
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Sender user ID"
// @Param adminId path int true "Receiving admin ID"
// @Success 200 {object} dto.APIResponse
// @Router /messages/read/{userId}/{adminId} [patch]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	userID, err := helpers.ParseID(ctx.Param("userId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	adminID, err := helpers.ParseID(ctx.Param("adminId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.messageService.MarkRead(ctx.Request.Context(), userID, adminID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Conversation marquée comme lue"))
}

// GetAdminConversations lists the admin inbox
// @Summary List admin conversations
// @Description Returns one summary per counterpart with the latest message and the unread count. Restricted to admins.
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param adminId path int true "Admin user ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationSummary}
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /messages/admin/{adminId} [get]
func (c *MessageController) GetAdminConversations(ctx *gin.Context) {
	adminID, err := helpers.ParseID(ctx.Param("adminId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summaries, err := c.messageService.GetAdminConversations(ctx.Request.Context(), adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summaries))
}
