package model

import (
	"github.com/google/uuid"
)

// FormTemplate describes a form shown to customers. Contact forms have no
// service type; post-booking forms are linked to one.
type FormTemplate struct {
	Base
	WorkspaceID   uuid.UUID  `db:"workspace_id" json:"workspace_id"`
	ServiceTypeID *uuid.UUID `db:"service_type_id" json:"service_type_id,omitempty"`
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description,omitempty"`
	Fields        JSONMap    `db:"fields" json:"fields"`
	IsActive      bool       `db:"is_active" json:"is_active"`
}

type CreateFormTemplateRequest struct {
	Name          string     `json:"name" binding:"required"`
	Description   string     `json:"description"`
	ServiceTypeID *uuid.UUID `json:"service_type_id"`
	Fields        JSONMap    `json:"fields"`
}
