package repository

import (
	"context"
	"fmt"

	"github.com/hasan-mia/the-x-tribune-server/internal/model"

	"github.com/jackc/pgx/v5"
)

// MessageRepository defines operations for dashboard messages
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListForUser(ctx context.Context, userID int) ([]*model.Message, error)
	MarkRead(ctx context.Context, id string, recipientID int) error
}

type messageRepository struct {
	db PgxIface
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db PgxIface) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	sql := `INSERT INTO messages (id, sender_id, recipient_id, body, read, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, msg.ID, msg.SenderID, msg.RecipientID, msg.Body, msg.Read, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListForUser returns messages sent to or by the user, newest first
func (r *messageRepository) ListForUser(ctx context.Context, userID int) ([]*model.Message, error) {
	sql := `SELECT id, sender_id, recipient_id, body, read, created_at FROM messages
            WHERE sender_id = $1 OR recipient_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var msgs []*model.Message
	for rows.Next() {
		msg := &model.Message{}
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.RecipientID, &msg.Body, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading message rows: %w", err)
	}
	return msgs, nil
}

// MarkRead flags a message as read; only the recipient may do so
func (r *messageRepository) MarkRead(ctx context.Context, id string, recipientID int) error {
	tag, err := r.db.Exec(ctx, `UPDATE messages SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
