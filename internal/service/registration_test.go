package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/payment/yoomoney"
	"github.com/offroad-club/backend/internal/repository"
)

type eventRepoStub struct {
	repository.Events

	events map[uuid.UUID]*domain.Event
}

func (s *eventRepoStub) GetByID(_ context.Context, id uuid.UUID) (*domain.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return event, nil
}

type registrationRepoStub struct {
	repository.Registrations

	created    []*domain.Registration
	createErr  error
	deletedIDs []uuid.UUID

	pendingDeleteErr error
	byID             map[uuid.UUID]*domain.Registration
}

func (s *registrationRepoStub) Create(_ context.Context, registration *domain.Registration) error {
	if s.createErr != nil {
		return s.createErr
	}

	s.created = append(s.created, registration)

	return nil
}

func (s *registrationRepoStub) GetByID(_ context.Context, id uuid.UUID) (*domain.Registration, error) {
	registration, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return registration, nil
}

func (s *registrationRepoStub) DeletePending(_ context.Context, id uuid.UUID, _ string) error {
	if s.pendingDeleteErr != nil {
		return s.pendingDeleteErr
	}

	s.deletedIDs = append(s.deletedIDs, id)

	return nil
}

type vehicleRepoStub struct {
	repository.Vehicles

	vehicles map[uuid.UUID]*domain.Vehicle
}

func (s *vehicleRepoStub) GetByID(_ context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	return vehicle, nil
}

func testLinkBuilder() *yoomoney.LinkBuilder {
	return yoomoney.NewLinkBuilder(config.PaymentConfig{
		Receiver:    "41001",
		QuickpayURL: "https://yoomoney.ru/quickpay/confirm.xml",
		ReturnURL:   "https://club.example",
	})
}

func newTestEvent(price int, childrenAllowed bool) *domain.Event {
	return &domain.Event{
		ID:              uuid.New(),
		Title:           "Autumn mud run",
		Location:        "Dmitrov polygon",
		Price:           price,
		ChildrenAllowed: childrenAllowed,
	}
}

func TestRegister_PricedEventReturnsPaymentURL(t *testing.T) {
	event := newTestEvent(1500, true)
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{event.ID: event}}
	registrations := &registrationRepoStub{}
	s := newRegistrationService(registrations, events, &vehicleRepoStub{}, testLinkBuilder())

	result, err := s.Register(context.Background(), RegisterInput{
		EventID:     event.ID,
		UserID:      "user-1",
		AdultsCount: 2,
		Phone:       "79161234567",
	})

	require.NoError(t, err)
	require.Len(t, registrations.created, 1)
	assert.Equal(t, domain.PaymentStatusPending, result.Registration.PaymentStatus)
	assert.Contains(t, result.PaymentURL, "label=reg_"+result.Registration.ID.String())
	assert.Contains(t, result.PaymentURL, "sum=1500")
}

func TestRegister_FreeEventIsPaidImmediately(t *testing.T) {
	event := newTestEvent(0, true)
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{event.ID: event}}
	registrations := &registrationRepoStub{}
	s := newRegistrationService(registrations, events, &vehicleRepoStub{}, testLinkBuilder())

	result, err := s.Register(context.Background(), RegisterInput{
		EventID:     event.ID,
		UserID:      "user-1",
		AdultsCount: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, result.Registration.PaymentStatus)
	assert.Empty(t, result.PaymentURL)
}

func TestRegister_ArchivedEventRejected(t *testing.T) {
	event := newTestEvent(1500, true)
	event.IsArchived = true
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{event.ID: event}}
	s := newRegistrationService(&registrationRepoStub{}, events, &vehicleRepoStub{}, testLinkBuilder())

	_, err := s.Register(context.Background(), RegisterInput{
		EventID:     event.ID,
		UserID:      "user-1",
		AdultsCount: 1,
	})

	assert.ErrorIs(t, err, ErrEventArchived)
}

func TestRegister_ChildrenChecks(t *testing.T) {
	noKids := newTestEvent(0, false)
	withKids := newTestEvent(0, true)
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{
		noKids.ID:   noKids,
		withKids.ID: withKids,
	}}
	s := newRegistrationService(&registrationRepoStub{}, events, &vehicleRepoStub{}, testLinkBuilder())

	_, err := s.Register(context.Background(), RegisterInput{
		EventID:       noKids.ID,
		UserID:        "user-1",
		AdultsCount:   1,
		ChildrenCount: 2,
		ChildrenAges:  "5, 8",
	})
	assert.ErrorIs(t, err, ErrChildrenNotAllowed)

	_, err = s.Register(context.Background(), RegisterInput{
		EventID:       withKids.ID,
		UserID:        "user-1",
		AdultsCount:   1,
		ChildrenCount: 2,
	})
	assert.ErrorIs(t, err, ErrChildrenAgesRequired)
}

func TestRegister_ForeignVehicleReadsAsNotFound(t *testing.T) {
	event := newTestEvent(0, true)
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{event.ID: event}}

	vehicleID := uuid.New()
	vehicles := &vehicleRepoStub{vehicles: map[uuid.UUID]*domain.Vehicle{
		vehicleID: {ID: vehicleID, UserID: "someone-else", Model: "UAZ Patriot"},
	}}
	s := newRegistrationService(&registrationRepoStub{}, events, vehicles, testLinkBuilder())

	_, err := s.Register(context.Background(), RegisterInput{
		EventID:     event.ID,
		UserID:      "user-1",
		AdultsCount: 1,
		VehicleID:   &vehicleID,
	})

	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestRegister_DuplicateMapsToAlreadyRegistered(t *testing.T) {
	event := newTestEvent(0, true)
	events := &eventRepoStub{events: map[uuid.UUID]*domain.Event{event.ID: event}}
	registrations := &registrationRepoStub{createErr: domain.ErrDuplicateEntry}
	s := newRegistrationService(registrations, events, &vehicleRepoStub{}, testLinkBuilder())

	_, err := s.Register(context.Background(), RegisterInput{
		EventID:     event.ID,
		UserID:      "user-1",
		AdultsCount: 1,
	})

	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestCancel_PendingRegistrationDeleted(t *testing.T) {
	registrations := &registrationRepoStub{}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	id := uuid.New()
	err := s.Cancel(context.Background(), id, "user-1")

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, registrations.deletedIDs)
}

func TestCancel_PaidRegistrationRefused(t *testing.T) {
	id := uuid.New()
	registrations := &registrationRepoStub{
		pendingDeleteErr: domain.ErrNoRowsAffected,
		byID: map[uuid.UUID]*domain.Registration{
			id: {ID: id, UserID: "user-1", PaymentStatus: domain.PaymentStatusPaid},
		},
	}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	err := s.Cancel(context.Background(), id, "user-1")

	assert.ErrorIs(t, err, ErrRegistrationPaid)
}

func TestCancel_SomeoneElsesRegistrationReadsAsNotFound(t *testing.T) {
	id := uuid.New()
	registrations := &registrationRepoStub{
		pendingDeleteErr: domain.ErrNoRowsAffected,
		byID: map[uuid.UUID]*domain.Registration{
			id: {ID: id, UserID: "someone-else", PaymentStatus: domain.PaymentStatusPending},
		},
	}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	err := s.Cancel(context.Background(), id, "user-1")

	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestCancel_GoneRegistrationReadsAsNotFound(t *testing.T) {
	registrations := &registrationRepoStub{pendingDeleteErr: domain.ErrNoRowsAffected}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	err := s.Cancel(context.Background(), uuid.New(), "user-1")

	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

type markPaidRecorder struct {
	repository.Registrations

	markedIDs []string
	markErr   error
}

func (s *markPaidRecorder) MarkPaid(_ context.Context, id string) error {
	if s.markErr != nil {
		return s.markErr
	}

	s.markedIDs = append(s.markedIDs, id)

	return nil
}

func TestConfirmPayment_MarksPaid(t *testing.T) {
	registrations := &markPaidRecorder{}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	err := s.ConfirmPayment(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, registrations.markedIDs)
}

func TestConfirmPayment_StoreErrorBubblesUp(t *testing.T) {
	registrations := &markPaidRecorder{markErr: errors.New("connection refused")}
	s := newRegistrationService(registrations, &eventRepoStub{}, &vehicleRepoStub{}, testLinkBuilder())

	err := s.ConfirmPayment(context.Background(), "42")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
