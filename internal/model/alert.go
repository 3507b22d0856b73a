package model

import (
	"github.com/google/uuid"
)

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type Alert struct {
	Base
	WorkspaceID uuid.UUID     `db:"workspace_id" json:"workspace_id"`
	Type        string        `db:"type" json:"type"`
	Severity    AlertSeverity `db:"severity" json:"severity"`
	Title       string        `db:"title" json:"title"`
	Message     string        `db:"message" json:"message"`
	LinkTo      string        `db:"link_to" json:"link_to,omitempty"`
	IsRead      bool          `db:"is_read" json:"is_read"`
}
