package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/careops/careops-api/internal/repository"
)

type workspaceRepository struct {
	db *sqlx.DB
}

type serviceTypeRepository struct {
	db *sqlx.DB
}

type bookingRepository struct {
	db *sqlx.DB
}

type contactRepository struct {
	db *sqlx.DB
}

type conversationRepository struct {
	db *sqlx.DB
}

type integrationRepository struct {
	db *sqlx.DB
}

type formTemplateRepository struct {
	db *sqlx.DB
}

type inventoryRepository struct {
	db *sqlx.DB
}

type userRepository struct {
	db *sqlx.DB
}

type alertRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewWorkspaceRepository(db *sqlx.DB) repository.WorkspaceRepository {
	return &workspaceRepository{db: db}
}

func NewServiceTypeRepository(db *sqlx.DB) repository.ServiceTypeRepository {
	return &serviceTypeRepository{db: db}
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func NewContactRepository(db *sqlx.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func NewIntegrationRepository(db *sqlx.DB) repository.IntegrationRepository {
	return &integrationRepository{db: db}
}

func NewFormTemplateRepository(db *sqlx.DB) repository.FormTemplateRepository {
	return &formTemplateRepository{db: db}
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewAlertRepository(db *sqlx.DB) repository.AlertRepository {
	return &alertRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
