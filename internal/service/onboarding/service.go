package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
	apperr "github.com/careops/careops-api/pkg/errors"
)

const stepCount = 8

// Service is the onboarding state machine. A workspace moves NotStarted ->
// InProgress implicitly on creation and InProgress -> Active only through
// Activate. Activation is one-way: nothing in this service deactivates a
// workspace.
type Service struct {
	workspaces   repository.WorkspaceRepository
	integrations repository.IntegrationRepository
	serviceTypes repository.ServiceTypeRepository
	forms        repository.FormTemplateRepository
	inventory    repository.InventoryRepository
	users        repository.UserRepository
	evaluator    *StepEvaluator
	outbox       repository.OutboxRepository
}

func NewService(
	workspaces repository.WorkspaceRepository,
	integrations repository.IntegrationRepository,
	serviceTypes repository.ServiceTypeRepository,
	forms repository.FormTemplateRepository,
	inventory repository.InventoryRepository,
	users repository.UserRepository,
	evaluator *StepEvaluator,
	outbox repository.OutboxRepository,
) *Service {
	return &Service{
		workspaces:   workspaces,
		integrations: integrations,
		serviceTypes: serviceTypes,
		forms:        forms,
		inventory:    inventory,
		users:        users,
		evaluator:    evaluator,
		outbox:       outbox,
	}
}

// State reports the lifecycle state for a workspace id.
func (s *Service) State(ctx context.Context, workspaceID uuid.UUID) (model.OnboardingState, error) {
	if workspaceID == uuid.Nil {
		return model.OnboardingNotStarted, nil
	}
	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.OnboardingNotStarted, nil
		}
		return "", fmt.Errorf("failed to get workspace: %w", err)
	}
	if workspace.IsActive {
		return model.OnboardingActive, nil
	}
	return model.OnboardingInProgress, nil
}

// Activate transitions the workspace to active after checking the gates in
// fixed order: integrations, service types, availability slots for any owned
// service. All unmet gates are reported together. Activating an already
// active workspace succeeds without re-checking gates; the persisted
// is_active flag, not incidental row existence, is the source of truth.
func (s *Service) Activate(ctx context.Context, workspaceID uuid.UUID) (*model.Workspace, error) {
	workspace, err := s.workspaces.Get(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("workspace", err)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}

	if workspace.IsActive {
		return workspace, nil
	}

	var unmet []string

	hasIntegration, err := s.integrations.ExistsForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check integrations: %w", err)
	}
	if !hasIntegration {
		unmet = append(unmet, model.GateIntegrations)
	}

	hasServiceType, err := s.serviceTypes.ExistsForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check service types: %w", err)
	}
	if !hasServiceType {
		unmet = append(unmet, model.GateServiceTypes)
	}

	hasSlots, err := s.serviceTypes.SlotsExistForWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability slots: %w", err)
	}
	if !hasSlots {
		unmet = append(unmet, model.GateAvailabilitySlots)
	}

	if len(unmet) > 0 {
		return nil, apperr.OnboardingGateUnmet(unmet)
	}

	if err := s.workspaces.SetActive(ctx, workspaceID, true); err != nil {
		return nil, fmt.Errorf("failed to activate workspace: %w", err)
	}
	workspace.IsActive = true

	s.emitEvent(ctx, workspaceID, model.EventWorkspaceActivated, workspace)

	return workspace, nil
}

// Status returns the derived progress view. It is diagnostic only; Activate
// alone enforces gates.
func (s *Service) Status(ctx context.Context, workspaceID uuid.UUID) (*model.OnboardingStatus, error) {
	steps, err := s.evaluator.Evaluate(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	done := steps.Count()
	return &model.OnboardingStatus{
		Completed:          steps.WorkspaceActive,
		CurrentStep:        done + 1,
		Steps:              steps,
		ProgressPercentage: float64(done) / stepCount * 100,
	}, nil
}

func (s *Service) emitEvent(ctx context.Context, workspaceID uuid.UUID, eventType string, payload interface{}) {
	if s.outbox == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.outbox.Create(ctx, &model.OutboxEvent{
		WorkspaceID: workspaceID,
		EventType:   eventType,
		Payload:     data,
	})
}
