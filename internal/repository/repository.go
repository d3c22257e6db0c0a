package repository

import (
	"context"

	"github.com/offroad-club/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Events        Events
	Registrations Registrations
	Vehicles      Vehicles
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Events:        newEventRepository(db),
		Registrations: newRegistrationRepository(db),
		Vehicles:      newVehicleRepository(db),
	}
}

type Events interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	GetAll(ctx context.Context, includeArchived bool) ([]domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Registrations interface {
	Create(ctx context.Context, registration *domain.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Registration, error)
	// MarkPaid flips payment_status to paid for the given raw id. Zero rows
	// affected is not an error: paid is terminal and rewriting it, or aiming
	// at an id that is gone, changes nothing.
	MarkPaid(ctx context.Context, id string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeletePending(ctx context.Context, id uuid.UUID, userID string) error
}

type Vehicles interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	GetByUserID(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}
