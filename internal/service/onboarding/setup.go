package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

// Setup-step writes. Each creates a resource whose existence flips the
// corresponding derived onboarding step; none of them consult or update any
// cached progress value.

// CreateWorkspace creates an inactive workspace and assigns the owner to it.
func (s *Service) CreateWorkspace(ctx context.Context, ownerID uuid.UUID, req *model.CreateWorkspaceRequest) (*model.Workspace, error) {
	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	workspace := &model.Workspace{
		Name:         req.Name,
		Address:      req.Address,
		Timezone:     timezone,
		ContactEmail: req.ContactEmail,
		IsActive:     false,
	}
	if err := s.workspaces.Create(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}

	if err := s.users.AssignWorkspace(ctx, ownerID, workspace.ID); err != nil {
		return nil, fmt.Errorf("failed to assign workspace to owner: %w", err)
	}

	return workspace, nil
}

// UpdateWorkspace applies the non-nil fields of the request. Activation state
// is not touched here; only Activate changes it.
func (s *Service) UpdateWorkspace(ctx context.Context, workspaceID uuid.UUID, req *model.UpdateWorkspaceRequest) (*model.Workspace, error) {
	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workspace", err)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if req.Name != nil {
		workspace.Name = *req.Name
	}
	if req.Address != nil {
		workspace.Address = *req.Address
	}
	if req.Timezone != nil {
		workspace.Timezone = *req.Timezone
	}
	if req.ContactEmail != nil {
		workspace.ContactEmail = *req.ContactEmail
	}

	if err := s.workspaces.Update(ctx, workspace); err != nil {
		return nil, fmt.Errorf("failed to update workspace: %w", err)
	}
	return workspace, nil
}

func (s *Service) CreateIntegration(ctx context.Context, workspaceID uuid.UUID, req *model.CreateIntegrationRequest) (*model.Integration, error) {
	integration := &model.Integration{
		WorkspaceID: workspaceID,
		Type:        req.Type,
		Provider:    req.Provider,
		Config:      req.Config,
		IsActive:    true,
	}
	if err := s.integrations.Create(ctx, integration); err != nil {
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}
	return integration, nil
}

func (s *Service) ListIntegrations(ctx context.Context, workspaceID uuid.UUID) ([]*model.Integration, error) {
	integrations, err := s.integrations.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list integrations: %w", err)
	}
	return integrations, nil
}

// CreateContactForm creates the public contact form. Contact forms never
// reference a service type.
func (s *Service) CreateContactForm(ctx context.Context, workspaceID uuid.UUID, req *model.CreateFormTemplateRequest) (*model.FormTemplate, error) {
	form := &model.FormTemplate{
		WorkspaceID: workspaceID,
		Name:        req.Name,
		Description: req.Description,
		Fields:      req.Fields,
		IsActive:    true,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create contact form: %w", err)
	}
	return form, nil
}

// CreatePostBookingForm creates a form linked to a service type, shown to
// customers after booking.
func (s *Service) CreatePostBookingForm(ctx context.Context, workspaceID uuid.UUID, req *model.CreateFormTemplateRequest) (*model.FormTemplate, error) {
	if req.ServiceTypeID == nil {
		return nil, apperr.BadRequest("service type id is required for post-booking forms", nil)
	}

	form := &model.FormTemplate{
		WorkspaceID:   workspaceID,
		ServiceTypeID: req.ServiceTypeID,
		Name:          req.Name,
		Description:   req.Description,
		Fields:        req.Fields,
		IsActive:      true,
	}
	if err := s.forms.Create(ctx, form); err != nil {
		return nil, fmt.Errorf("failed to create post-booking form: %w", err)
	}
	return form, nil
}

func (s *Service) CreateServiceType(ctx context.Context, workspaceID uuid.UUID, req *model.CreateServiceTypeRequest) (*model.ServiceType, error) {
	if req.DurationMinutes <= 0 {
		return nil, apperr.BadRequest("duration must be positive", nil)
	}

	serviceType := &model.ServiceType{
		WorkspaceID:     workspaceID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
		IsActive:        true,
	}
	if err := s.serviceTypes.Create(ctx, serviceType); err != nil {
		return nil, fmt.Errorf("failed to create service type: %w", err)
	}
	return serviceType, nil
}

func (s *Service) CreateAvailabilitySlot(ctx context.Context, req *model.CreateAvailabilitySlotRequest) (*model.AvailabilitySlot, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, apperr.BadRequest("day_of_week must be 0 (Sunday) through 6 (Saturday)", nil)
	}
	if req.StartTime >= req.EndTime {
		return nil, apperr.BadRequest("start_time must be before end_time", nil)
	}

	slot := &model.AvailabilitySlot{
		ServiceTypeID: req.ServiceTypeID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	}
	if err := s.serviceTypes.CreateAvailabilitySlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to create availability slot: %w", err)
	}
	return slot, nil
}

func (s *Service) CreateInventoryItem(ctx context.Context, workspaceID uuid.UUID, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	item := &model.InventoryItem{
		WorkspaceID:       workspaceID,
		Name:              req.Name,
		Description:       req.Description,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		Unit:              req.Unit,
	}
	if err := s.inventory.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// AddStaff creates a staff user directly in the workspace.
func (s *Service) AddStaff(ctx context.Context, workspaceID uuid.UUID, req *model.AddStaffRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		WorkspaceID:  &workspaceID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         model.RoleStaff,
		Permissions:  req.Permissions,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}
	return user, nil
}
