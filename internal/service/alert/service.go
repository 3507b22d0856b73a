package alert

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

// Service surfaces workspace alerts raised by other services.
type Service struct {
	alerts repository.AlertRepository
}

func NewService(alerts repository.AlertRepository) *Service {
	return &Service{alerts: alerts}
}

func (s *Service) Create(ctx context.Context, alert *model.Alert) error {
	if err := s.alerts.Create(ctx, alert); err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, workspaceID uuid.UUID) ([]*model.Alert, error) {
	alerts, err := s.alerts.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.alerts.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("failed to mark alert read: %w", err)
	}
	return nil
}
