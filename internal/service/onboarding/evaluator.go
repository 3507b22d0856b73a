package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

// StepEvaluator derives the eight onboarding step facts from existence
// checks against the owning collections. It holds no state of its own:
// every call re-derives from the store, so deleting a resource regresses
// the corresponding step.
type StepEvaluator struct {
	workspaces   repository.WorkspaceRepository
	integrations repository.IntegrationRepository
	forms        repository.FormTemplateRepository
	serviceTypes repository.ServiceTypeRepository
	inventory    repository.InventoryRepository
	users        repository.UserRepository
}

func NewStepEvaluator(
	workspaces repository.WorkspaceRepository,
	integrations repository.IntegrationRepository,
	forms repository.FormTemplateRepository,
	serviceTypes repository.ServiceTypeRepository,
	inventory repository.InventoryRepository,
	users repository.UserRepository,
) *StepEvaluator {
	return &StepEvaluator{
		workspaces:   workspaces,
		integrations: integrations,
		forms:        forms,
		serviceTypes: serviceTypes,
		inventory:    inventory,
		users:        users,
	}
}

// Evaluate computes the step facts for a workspace. A nil workspace id or a
// missing workspace row yields all-false steps, not an error.
func (e *StepEvaluator) Evaluate(ctx context.Context, workspaceID uuid.UUID) (model.OnboardingSteps, error) {
	var steps model.OnboardingSteps

	if workspaceID == uuid.Nil {
		return steps, nil
	}

	workspace, err := e.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return steps, nil
		}
		return steps, fmt.Errorf("failed to get workspace: %w", err)
	}
	steps.WorkspaceCreated = true
	steps.WorkspaceActive = workspace.IsActive

	if steps.IntegrationsConfigured, err = e.integrations.ExistsForWorkspace(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check integrations: %w", err)
	}
	if steps.ContactFormCreated, err = e.forms.ContactFormExists(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check contact forms: %w", err)
	}
	if steps.ServiceTypesCreated, err = e.serviceTypes.ExistsForWorkspace(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check service types: %w", err)
	}
	if steps.PostBookingFormsCreated, err = e.forms.PostBookingFormExists(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check post-booking forms: %w", err)
	}
	if steps.InventorySet, err = e.inventory.ExistsForWorkspace(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check inventory: %w", err)
	}
	if steps.StaffInvited, err = e.users.StaffExistsForWorkspace(ctx, workspaceID); err != nil {
		return steps, fmt.Errorf("failed to check staff: %w", err)
	}

	return steps, nil
}
