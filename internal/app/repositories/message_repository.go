package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ybamri/recycleapp/internal/app/models"
	"github.com/ybamri/recycleapp/internal/app/models/dto"
)

// MessageRepository handles database operations for direct messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (*models.Message, error) {
	query := squirrel.Insert("messages").
		Columns("sender_id", "receiver_id", "content", "is_read").
		Values(message.SenderID, message.ReceiverID, message.Content, message.IsRead).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return message, nil
}

// GetConversation retrieves all messages exchanged between two users in
// either direction, oldest first, with sender and receiver profiles.
func (r *MessageRepository) GetConversation(ctx context.Context, userA, userB int64) ([]*models.Message, error) {
	query := squirrel.Select(
		"m.id", "m.sender_id", "m.receiver_id", "m.content", "m.is_read", "m.created_at",
		"s.id", "s.name", "s.email", "s.role",
		"r.id", "r.name", "r.email", "r.role",
	).
		From("messages m").
		Join("users s ON s.id = m.sender_id").
		Join("users r ON r.id = m.receiver_id").
		Where("(m.sender_id = ? AND m.receiver_id = ?) OR (m.sender_id = ? AND m.receiver_id = ?)",
			userA, userB, userB, userA).
		OrderBy("m.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message, err := scanMessageWithUsers(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func scanMessageWithUsers(row pgx.Row) (*models.Message, error) {
	var message models.Message
	var sender models.User
	var receiver models.User
	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Content,
		&message.IsRead,
		&message.CreatedAt,
		&sender.ID,
		&sender.Name,
		&sender.Email,
		&sender.Role,
		&receiver.ID,
		&receiver.Name,
		&receiver.Email,
		&receiver.Role,
	)
	if err != nil {
		return nil, err
	}
	message.Sender = &sender
	message.Receiver = &receiver
	return &message, nil
}

// GetAdminConversations aggregates, for an admin, one summary row per
// counterpart user: their profile, the latest message in the conversation
// and how many of their messages the admin has not read yet. The
// aggregation runs in SQL so the list stays correct without loading every
// message. Summaries come back most recent conversation first.
func (r *MessageRepository) GetAdminConversations(ctx context.Context, adminID int64) ([]*dto.ConversationSummary, error) {
	const sql = `
		SELECT other_id, name, email, content, last_message_time, unread_count
		FROM (
			SELECT DISTINCT ON (other_id)
				other_id,
				u.name,
				u.email,
				m.content,
				m.created_at AS last_message_time,
				(
					SELECT COUNT(*)
					FROM messages unread
					WHERE unread.sender_id = other_id
					  AND unread.receiver_id = $1
					  AND unread.is_read = FALSE
				) AS unread_count
			FROM (
				SELECT *,
					CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END AS other_id
				FROM messages
				WHERE sender_id = $1 OR receiver_id = $1
			) m
			JOIN users u ON u.id = m.other_id
			ORDER BY other_id, m.created_at DESC
		) latest
		ORDER BY last_message_time DESC`

	rows, err := r.db.Query(ctx, sql, adminID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var summaries []*dto.ConversationSummary
	for rows.Next() {
		var summary dto.ConversationSummary
		err := rows.Scan(
			&summary.UserID,
			&summary.UserName,
			&summary.UserEmail,
			&summary.LastMessage,
			&summary.LastMessageTime,
			&summary.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

// MarkConversationRead marks every message sent by senderID to receiverID
// as read.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID int64) error {
	query := squirrel.Update("messages").
		Set("is_read", true).
		Where("sender_id = ? AND receiver_id = ? AND is_read = FALSE", senderID, receiverID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}
