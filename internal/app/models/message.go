package models

import (
	"time"
)

// Message defines a direct message between two users based on the
// 'messages' table. There is no threading entity; conversations are computed
// by grouping messages by counterpart.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderID   int64     `json:"-" db:"sender_id"`
	ReceiverID int64     `json:"-" db:"receiver_id"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"isRead" db:"is_read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	Sender   *User `json:"sender,omitempty"`   // Relation, no db tag
	Receiver *User `json:"receiver,omitempty"` // Relation, no db tag
}
