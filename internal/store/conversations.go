package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aurachat/aura/backend/internal/model/chat"
)

// CreateConversation starts a new conversation for a user.
func (s *Store) CreateConversation(ctx context.Context, userID string) (chat.Conversation, error) {
	now := time.Now().UTC()
	conv := chat.Conversation{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		conv.ID, conv.UserID, conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return chat.Conversation{}, wrapError("create conversation", err)
	}
	return conv, nil
}

// Conversation fetches a conversation by ID.
func (s *Store) Conversation(ctx context.Context, id string) (chat.Conversation, error) {
	var conv chat.Conversation
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at
		 FROM conversations WHERE id = ?`, id,
	).Scan(&conv.ID, &conv.UserID, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return chat.Conversation{}, ErrNotFound
	}
	if err != nil {
		return chat.Conversation{}, wrapError("conversation", err)
	}
	return conv, nil
}

// AppendMessage durably records a turn and refreshes the conversation's
// updated timestamp in the same transaction.
func (s *Store) AppendMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return chat.Message{}, wrapError("append message", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		msg.CreatedAt, msg.ConversationID,
	)
	if err != nil {
		return chat.Message{}, wrapError("append message", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return chat.Message{}, wrapError("append message", err)
	}
	if affected == 0 {
		return chat.Message{}, ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.ID, msg.ConversationID, msg.Role, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return chat.Message{}, wrapError("append message", err)
	}

	if err := tx.Commit(); err != nil {
		return chat.Message{}, wrapError("append message", err)
	}
	return msg, nil
}

// Transcript returns every message of a conversation in chronological order.
func (s *Store) Transcript(ctx context.Context, conversationID string) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, role, content, created_at
		 FROM messages
		 WHERE conversation_id = ?
		 ORDER BY created_at ASC, id ASC`, conversationID,
	)
	if err != nil {
		return nil, wrapError("transcript", err)
	}
	defer rows.Close()

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, wrapError("transcript", err)
		}
		messages = append(messages, m)
	}
	return messages, wrapError("transcript", rows.Err())
}

// RecentUserUtterances returns the text of the last limit user-authored
// turns, oldest first.
func (s *Store) RecentUserUtterances(ctx context.Context, conversationID string, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT content FROM messages
		 WHERE conversation_id = ? AND role = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, conversationID, chat.RoleUser, limit,
	)
	if err != nil {
		return nil, wrapError("recent user utterances", err)
	}
	defer rows.Close()

	var utterances []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, wrapError("recent user utterances", err)
		}
		utterances = append(utterances, content)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapError("recent user utterances", err)
	}

	// Restore chronological order.
	for i, j := 0, len(utterances)-1; i < j; i, j = i+1, j-1 {
		utterances[i], utterances[j] = utterances[j], utterances[i]
	}
	return utterances, nil
}

// Touch refreshes a conversation's updated timestamp.
func (s *Store) Touch(ctx context.Context, conversationID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		time.Now().UTC(), conversationID,
	)
	if err != nil {
		return wrapError("touch", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapError("touch", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
