package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/payment/yoomoney"
	"github.com/offroad-club/backend/internal/queue/client"
	"github.com/offroad-club/backend/internal/queue/task"
	"github.com/offroad-club/backend/internal/repository"
	"github.com/offroad-club/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type registrationService struct {
	registrationRepository repository.Registrations
	eventRepository        repository.Events
	vehicleRepository      repository.Vehicles
	linkBuilder            *yoomoney.LinkBuilder
}

func newRegistrationService(
	registrationRepository repository.Registrations,
	eventRepository repository.Events,
	vehicleRepository repository.Vehicles,
	linkBuilder *yoomoney.LinkBuilder,
) *registrationService {
	return &registrationService{
		registrationRepository: registrationRepository,
		eventRepository:        eventRepository,
		vehicleRepository:      vehicleRepository,
		linkBuilder:            linkBuilder,
	}
}

type RegisterInput struct {
	EventID       uuid.UUID
	UserID        string
	FirstName     string
	Username      string
	AdultsCount   int
	ChildrenCount int
	ChildrenAges  string
	VehicleID     *uuid.UUID
	CarInfo       string
	Phone         string
}

type RegisterResult struct {
	Registration *domain.Registration
	// PaymentURL is empty for free events: their registrations are created
	// paid and there is nothing to check out.
	PaymentURL string
}

func (s *registrationService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	event, err := s.eventRepository.GetByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}

	if event.IsArchived {
		return nil, ErrEventArchived
	}

	if input.ChildrenCount > 0 {
		if !event.ChildrenAllowed {
			return nil, ErrChildrenNotAllowed
		}
		if input.ChildrenAges == "" {
			return nil, ErrChildrenAgesRequired
		}
	}

	if input.VehicleID != nil {
		vehicle, err := s.vehicleRepository.GetByID(ctx, *input.VehicleID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, fmt.Errorf("get vehicle failed: %w", err)
		}
		// Referencing someone else's garage entry is the same as not found.
		if vehicle.UserID != input.UserID {
			return nil, ErrVehicleNotFound
		}
	}

	registrationID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate registration id failed: %w", err)
	}

	status := domain.PaymentStatusPending
	if event.IsFree() {
		status = domain.PaymentStatusPaid
	}

	registration := &domain.Registration{
		ID:      registrationID,
		EventID: input.EventID,
		UserID:  input.UserID,
		FirstName: sql.NullString{
			String: input.FirstName,
			Valid:  input.FirstName != "",
		},
		Username: sql.NullString{
			String: input.Username,
			Valid:  input.Username != "",
		},
		AdultsCount:   input.AdultsCount,
		ChildrenCount: input.ChildrenCount,
		ChildrenAges: sql.NullString{
			String: input.ChildrenAges,
			Valid:  input.ChildrenAges != "",
		},
		VehicleID: input.VehicleID,
		CarInfo: sql.NullString{
			String: input.CarInfo,
			Valid:  input.CarInfo != "",
		},
		Phone: sql.NullString{
			String: input.Phone,
			Valid:  input.Phone != "",
		},
		PaymentStatus: status,
	}

	if err := s.registrationRepository.Create(ctx, registration); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration failed: %w", err)
	}

	result := &RegisterResult{Registration: registration}

	if !event.IsFree() {
		paymentURL, err := s.linkBuilder.PaymentURL(yoomoney.LinkParams{
			RegistrationID: registrationID.String(),
			EventID:        event.ID.String(),
			Description:    event.Title,
			Amount:         event.Price,
		})
		if err != nil {
			return nil, fmt.Errorf("build payment url failed: %w", err)
		}
		result.PaymentURL = paymentURL
	}

	return result, nil
}

func (s *registrationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error) {
	registration, err := s.registrationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration by id failed: %w", err)
	}

	return registration, nil
}

func (s *registrationService) GetByUser(ctx context.Context, userID string) ([]domain.Registration, error) {
	registrations, err := s.registrationRepository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get registrations by user failed: %w", err)
	}

	return registrations, nil
}

func (s *registrationService) GetByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	registrations, err := s.registrationRepository.GetByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get registrations by event failed: %w", err)
	}

	return registrations, nil
}

// Cancel removes the caller's own registration while it is still pending.
// A paid registration can only be removed by an administrator.
func (s *registrationService) Cancel(ctx context.Context, id uuid.UUID, userID string) error {
	err := s.registrationRepository.DeletePending(ctx, id, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNoRowsAffected) {
		return fmt.Errorf("cancel registration failed: %w", err)
	}

	// Nothing matched: either the row is gone, belongs to someone else, or
	// is already paid. Look it up to answer precisely.
	registration, err := s.registrationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("get registration failed: %w", err)
	}

	if registration.UserID != userID {
		return ErrRegistrationNotFound
	}

	return ErrRegistrationPaid
}

func (s *registrationService) AdminDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.registrationRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("delete registration failed: %w", err)
	}

	return nil
}

// ConfirmPayment is called once a payment notification has authenticated.
// The store write is the contract; the organizer notification is best effort
// and never bubbles an error back to the payment processor.
func (s *registrationService) ConfirmPayment(ctx context.Context, registrationID string) error {
	if err := s.registrationRepository.MarkPaid(ctx, registrationID); err != nil {
		return fmt.Errorf("mark registration paid failed: %w", err)
	}

	s.notifyOrganizers(ctx, registrationID)

	return nil
}

func (s *registrationService) notifyOrganizers(ctx context.Context, registrationID string) {
	queueClient := client.GetClient(ctx)
	if queueClient == nil {
		logger.Debug("queue client not configured, skipping organizer notification",
			zap.String("registration_id", registrationID))
		return
	}

	notifyTask, err := task.NewPaymentReceivedTask(registrationID)
	if err != nil {
		logger.Error("build payment received task failed", zap.Error(err),
			zap.String("registration_id", registrationID))
		return
	}

	if _, err := queueClient.Enqueue(notifyTask); err != nil {
		logger.Error("enqueue payment received task failed", zap.Error(err),
			zap.String("registration_id", registrationID))
	}
}
