package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	Base
	WorkspaceID uuid.UUID `db:"workspace_id" json:"workspace_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email,omitempty"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Metadata    JSONMap   `db:"metadata" json:"metadata"`
}

type CreateContactRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    string  `json:"phone"`
	Metadata JSONMap `json:"metadata"`
}

type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
)

type Conversation struct {
	Base
	WorkspaceID uuid.UUID          `db:"workspace_id" json:"workspace_id"`
	ContactID   uuid.UUID          `db:"contact_id" json:"contact_id"`
	Status      ConversationStatus `db:"status" json:"status"`
}

type SenderType string

const (
	SenderTypeSystem   SenderType = "system"
	SenderTypeStaff    SenderType = "staff"
	SenderTypeCustomer SenderType = "customer"
)

type MessageChannel string

const (
	ChannelEmail    MessageChannel = "email"
	ChannelSMS      MessageChannel = "sms"
	ChannelInternal MessageChannel = "internal"
)

type Message struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	ConversationID uuid.UUID      `db:"conversation_id" json:"conversation_id"`
	SenderType     SenderType     `db:"sender_type" json:"sender_type"`
	SenderID       *uuid.UUID     `db:"sender_id" json:"sender_id,omitempty"`
	Channel        MessageChannel `db:"channel" json:"channel"`
	Content        string         `db:"content" json:"content"`
	IsRead         bool           `db:"is_read" json:"is_read"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// ContactFormRequest is the public contact form submission.
type ContactFormRequest struct {
	WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Email       string    `json:"email" binding:"required,email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message" binding:"required"`
}

type ReplyRequest struct {
	Content string         `json:"content" binding:"required"`
	Channel MessageChannel `json:"channel" binding:"omitempty,oneof=email sms internal"`
}
