package model

import (
	"github.com/google/uuid"
)

type IntegrationType string

const (
	IntegrationTypeEmail    IntegrationType = "email"
	IntegrationTypeSMS      IntegrationType = "sms"
	IntegrationTypeCalendar IntegrationType = "calendar"
	IntegrationTypeWebhook  IntegrationType = "webhook"
	IntegrationTypeStorage  IntegrationType = "storage"
)

// Integration is a configured outbound channel (email, SMS, ...) for a
// workspace. At least one is required before activation.
type Integration struct {
	Base
	WorkspaceID uuid.UUID       `db:"workspace_id" json:"workspace_id"`
	Type        IntegrationType `db:"type" json:"type"`
	Provider    string          `db:"provider" json:"provider"`
	Config      JSONMap         `db:"config" json:"config"`
	IsActive    bool            `db:"is_active" json:"is_active"`
}

type CreateIntegrationRequest struct {
	Type     IntegrationType `json:"type" binding:"required,oneof=email sms calendar webhook storage"`
	Provider string          `json:"provider" binding:"required"`
	Config   JSONMap         `json:"config"`
}
