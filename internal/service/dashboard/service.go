package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careops/careops-api/internal/model"
	"github.com/careops/careops-api/internal/repository"
)

// Overview is the owner's at-a-glance view of the workspace.
type Overview struct {
	BookingsToday    int                    `json:"bookings_today"`
	BookingsUpcoming int                    `json:"bookings_upcoming"`
	PendingBookings  int                    `json:"pending_bookings"`
	UnreadMessages   int                    `json:"unread_messages"`
	LowStockItems    []*model.InventoryItem `json:"low_stock_items"`
	UnreadAlerts     int                    `json:"unread_alerts"`
}

type Service struct {
	bookings      repository.BookingRepository
	conversations repository.ConversationRepository
	inventory     repository.InventoryRepository
	alerts        repository.AlertRepository
}

func NewService(
	bookings repository.BookingRepository,
	conversations repository.ConversationRepository,
	inventory repository.InventoryRepository,
	alerts repository.AlertRepository,
) *Service {
	return &Service{
		bookings:      bookings,
		conversations: conversations,
		inventory:     inventory,
		alerts:        alerts,
	}
}

// Overview aggregates today's and upcoming counts for the workspace. The
// seven-day upcoming window starts at the end of today so the two booking
// counts never overlap.
func (s *Service) Overview(ctx context.Context, workspaceID uuid.UUID, now time.Time) (*Overview, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	today, err := s.bookings.CountInRange(ctx, workspaceID, dayStart, dayEnd, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	upcoming, err := s.bookings.CountInRange(ctx, workspaceID, dayEnd, dayEnd.AddDate(0, 0, 7), "")
	if err != nil {
		return nil, fmt.Errorf("failed to count upcoming bookings: %w", err)
	}

	pending, err := s.bookings.CountInRange(ctx, workspaceID, dayStart, dayEnd.AddDate(0, 0, 7), model.BookingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending bookings: %w", err)
	}

	unread, err := s.conversations.CountUnread(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread messages: %w", err)
	}

	lowStock, err := s.inventory.ListLowStock(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list low-stock items: %w", err)
	}

	alerts, err := s.alerts.List(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	unreadAlerts := 0
	for _, a := range alerts {
		if !a.IsRead {
			unreadAlerts++
		}
	}

	return &Overview{
		BookingsToday:    today,
		BookingsUpcoming: upcoming,
		PendingBookings:  pending,
		UnreadMessages:   unread,
		LowStockItems:    lowStock,
		UnreadAlerts:     unreadAlerts,
	}, nil
}
