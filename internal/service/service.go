package service

import (
	"context"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/payment/yoomoney"
	"github.com/offroad-club/backend/internal/repository"
	"github.com/offroad-club/backend/pkg/auth"
	"github.com/offroad-club/backend/pkg/hash"

	"github.com/google/uuid"
)

type Services struct {
	Events        Events
	Registrations Registrations
	Garage        Garage
	Admin         Admin
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	return &Services{
		Events: newEventService(deps.Repos.Events),
		Registrations: newRegistrationService(
			deps.Repos.Registrations,
			deps.Repos.Events,
			deps.Repos.Vehicles,
			yoomoney.NewLinkBuilder(deps.Config.Payment),
		),
		Garage: newGarageService(deps.Repos.Vehicles),
		Admin:  newAdminService(deps.Config.Admin, deps.Hasher, deps.TokenManager),
	}
}

type Events interface {
	GetAll(ctx context.Context, includeArchived bool) ([]domain.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	Create(ctx context.Context, input EventInput) (*domain.Event, error)
	Update(ctx context.Context, id uuid.UUID, input EventInput) (*domain.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Registrations interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByUser(ctx context.Context, userID string) ([]domain.Registration, error)
	GetByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error)
	Cancel(ctx context.Context, id uuid.UUID, userID string) error
	AdminDelete(ctx context.Context, id uuid.UUID) error
	// ConfirmPayment applies the single pending -> paid transition for the id
	// extracted from a verified payment notification.
	ConfirmPayment(ctx context.Context, registrationID string) error
}

type Garage interface {
	List(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Add(ctx context.Context, input VehicleInput) (*domain.Vehicle, error)
	Remove(ctx context.Context, id uuid.UUID, userID string) error
}

type Admin interface {
	Login(ctx context.Context, email string, password string) (*Tokens, error)
}
