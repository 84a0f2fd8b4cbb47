package dto

import "time"

// SendMessageRequest represents a direct message creation request
type SendMessageRequest struct {
	SenderID   int64  `json:"senderId" binding:"required"`
	ReceiverID int64  `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// ConversationSummary represents one entry of the admin inbox: the
// counterpart, the most recent message and the number of unread messages.
type ConversationSummary struct {
	UserID          int64     `json:"userId"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
}
