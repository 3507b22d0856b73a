package inbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

// Dispatcher sends an outbound message to the contact over a channel.
// Implemented by the email package; SMS dispatch plugs in the same way.
type Dispatcher interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service is the shared inbox: every contact has at most one active
// conversation, and all inbound form submissions and outbound replies
// land there as messages.
type Service struct {
	contacts      repository.ContactRepository
	conversations repository.ConversationRepository
	workspaces    repository.WorkspaceRepository
	dispatcher    Dispatcher
	logger        zerolog.Logger
}

func NewService(
	contacts repository.ContactRepository,
	conversations repository.ConversationRepository,
	workspaces repository.WorkspaceRepository,
	dispatcher Dispatcher,
	logger zerolog.Logger,
) *Service {
	return &Service{
		contacts:      contacts,
		conversations: conversations,
		workspaces:    workspaces,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

// SubmitContactForm handles a public form submission: resolve or create the
// contact by email, reuse their active conversation or open one, then append
// the message as an unread customer message.
func (s *Service) SubmitContactForm(ctx context.Context, req *model.ContactFormRequest) (*model.Conversation, error) {
	workspace, err := s.workspaces.Get(ctx, req.WorkspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workspace", err)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	if !workspace.IsActive {
		return nil, apperr.WorkspaceInactive()
	}

	contact, err := s.contacts.GetByEmail(ctx, req.WorkspaceID, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up contact: %w", err)
		}
		contact = &model.Contact{
			WorkspaceID: req.WorkspaceID,
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
		}
		if err := s.contacts.Create(ctx, contact); err != nil {
			return nil, fmt.Errorf("failed to create contact: %w", err)
		}
	}

	conversation, err := s.conversations.GetActiveForContact(ctx, req.WorkspaceID, contact.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to look up conversation: %w", err)
		}
		conversation = &model.Conversation{
			WorkspaceID: req.WorkspaceID,
			ContactID:   contact.ID,
			Status:      model.ConversationStatusActive,
		}
		if err := s.conversations.Create(ctx, conversation); err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
	}

	message := &model.Message{
		ConversationID: conversation.ID,
		SenderType:     model.SenderTypeCustomer,
		Channel:        model.ChannelInternal,
		Content:        req.Message,
	}
	if err := s.conversations.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return conversation, nil
}

// Reply appends a staff message to a conversation and, for the email channel,
// dispatches it to the contact. Dispatch failure does not roll back the
// message; the inbox is the record of what staff wrote.
func (s *Service) Reply(ctx context.Context, conversationID, senderID uuid.UUID, req *model.ReplyRequest) (*model.Message, error) {
	conversation, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("conversation", err)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	channel := req.Channel
	if channel == "" {
		channel = model.ChannelInternal
	}

	message := &model.Message{
		ConversationID: conversationID,
		SenderType:     model.SenderTypeStaff,
		SenderID:       &senderID,
		Channel:        channel,
		Content:        req.Content,
		IsRead:         true,
	}
	if err := s.conversations.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if channel == model.ChannelEmail && s.dispatcher != nil {
		contact, err := s.contacts.Get(ctx, conversation.ContactID)
		if err != nil {
			return nil, fmt.Errorf("failed to get contact: %w", err)
		}
		if contact.Email != "" {
			if err := s.dispatcher.Send(ctx, contact.Email, "New message", req.Content); err != nil {
				s.logger.Error().Err(err).
					Str("conversation_id", conversationID.String()).
					Msg("failed to dispatch reply email")
			}
		}
	}

	return message, nil
}

// ListConversations returns all conversations for a workspace.
func (s *Service) ListConversations(ctx context.Context, workspaceID uuid.UUID) ([]*model.Conversation, error) {
	conversations, err := s.conversations.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// ListMessages returns the messages of a conversation and marks them read.
func (s *Service) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]*model.Message, error) {
	if _, err := s.conversations.Get(ctx, conversationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("conversation", err)
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	messages, err := s.conversations.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	if err := s.conversations.MarkMessagesRead(ctx, conversationID); err != nil {
		s.logger.Warn().Err(err).
			Str("conversation_id", conversationID.String()).
			Msg("failed to mark messages read")
	}

	return messages, nil
}

// UnreadCount returns the number of unread customer messages in a workspace.
func (s *Service) UnreadCount(ctx context.Context, workspaceID uuid.UUID) (int, error) {
	count, err := s.conversations.CountUnread(ctx, workspaceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// ListContacts returns the workspace's contact book.
func (s *Service) ListContacts(ctx context.Context, workspaceID uuid.UUID) ([]*model.Contact, error) {
	contacts, err := s.contacts.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}
