package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

func (r *conversationRepository) Create(ctx context.Context, conv *model.Conversation) error {
	query := `
		INSERT INTO conversations (
			id, workspace_id, contact_id, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	conv.ID = uuid.New()
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		conv.ID,
		conv.WorkspaceID,
		conv.ContactID,
		conv.Status,
		conv.CreatedAt,
		conv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	query := `
		SELECT id, workspace_id, contact_id, status, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) GetActiveForContact(ctx context.Context, workspaceID, contactID uuid.UUID) (*model.Conversation, error) {
	query := `
		SELECT id, workspace_id, contact_id, status, created_at, updated_at
		FROM conversations
		WHERE workspace_id = $1 AND contact_id = $2 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`
	var conv model.Conversation
	err := r.db.GetContext(ctx, &conv, query, workspaceID, contactID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active conversation: %w", err)
	}
	return &conv, nil
}

func (r *conversationRepository) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Conversation, error) {
	query := `
		SELECT id, workspace_id, contact_id, status, created_at, updated_at
		FROM conversations
		WHERE workspace_id = $1
		ORDER BY updated_at DESC
	`
	var convs []*model.Conversation
	err := r.db.SelectContext(ctx, &convs, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return convs, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (
			id, conversation_id, sender_type, sender_id, channel,
			content, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		msg.ID,
		msg.ConversationID,
		msg.SenderType,
		msg.SenderID,
		msg.Channel,
		msg.Content,
		msg.IsRead,
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*model.Message, error) {
	query := `
		SELECT id, conversation_id, sender_type, sender_id, channel,
			   content, is_read, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`
	var msgs []*model.Message
	err := r.db.SelectContext(ctx, &msgs, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

func (r *conversationRepository) CountUnread(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE c.workspace_id = $1
		AND m.is_read = false
		AND m.sender_type = 'customer'
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

func (r *conversationRepository) MarkMessagesRead(ctx context.Context, conversationID uuid.UUID) error {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE conversation_id = $1 AND is_read = false
	`
	_, err := r.db.ExecContext(ctx, query, conversationID)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
