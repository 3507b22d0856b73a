package model

// Workspace is the tenant boundary. A workspace starts inactive and only
// accepts public bookings after onboarding activation.
type Workspace struct {
	Base
	Name         string `db:"name" json:"name"`
	Address      string `db:"address" json:"address,omitempty"`
	Timezone     string `db:"timezone" json:"timezone"`
	ContactEmail string `db:"contact_email" json:"contact_email"`
	IsActive     bool   `db:"is_active" json:"is_active"`
}

type CreateWorkspaceRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	Timezone     string `json:"timezone"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
}

type UpdateWorkspaceRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	Timezone     *string `json:"timezone"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email"`
}
