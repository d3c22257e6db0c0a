package worker

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/service"
	emailProvider "github.com/offroad-club/backend/pkg/email"
	mockEmail "github.com/offroad-club/backend/pkg/email/mock"
)

type registrationsStub struct {
	service.Registrations

	registration *domain.Registration
}

func (s *registrationsStub) GetByID(_ context.Context, _ uuid.UUID) (*domain.Registration, error) {
	if s.registration == nil {
		return nil, service.ErrRegistrationNotFound
	}

	return s.registration, nil
}

type eventsStub struct {
	service.Events

	event *domain.Event
}

func (s *eventsStub) GetByID(_ context.Context, _ uuid.UUID) (*domain.Event, error) {
	if s.event == nil {
		return nil, service.ErrEventNotFound
	}

	return s.event, nil
}

func enabledEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Enabled:        true,
		OrganizerEmail: "org@club.example",
		Templates: config.EmailTemplates{
			PaymentReceived: "payment_received.html",
		},
	}
}

func TestNotifyPaymentReceived_SendsEmail(t *testing.T) {
	registrationID := uuid.New()
	eventID := uuid.New()

	services := &service.Services{
		Registrations: &registrationsStub{registration: &domain.Registration{
			ID:          registrationID,
			EventID:     eventID,
			UserID:      "user-1",
			FirstName:   sql.NullString{String: "Иван", Valid: true},
			Phone:       sql.NullString{String: "79161234567", Valid: true},
			AdultsCount: 2,
		}},
		Events: &eventsStub{event: &domain.Event{
			ID:    eventID,
			Title: "Autumn mud run",
		}},
	}

	sender := new(mockEmail.EmailSender)
	sender.On("Send", mock.MatchedBy(func(input emailProvider.SendEmailInput) bool {
		return input.To == "org@club.example" &&
			input.Subject == "Оплата получена: Autumn mud run" &&
			input.Body != ""
	})).Return(nil)

	n := newOrganizerNotifier(sender, services, enabledEmailConfig())

	err := n.NotifyPaymentReceived(context.Background(), registrationID.String())

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestNotifyPaymentReceived_DisabledSkipsSend(t *testing.T) {
	sender := new(mockEmail.EmailSender)
	n := newOrganizerNotifier(sender, &service.Services{}, config.EmailConfig{Enabled: false})

	err := n.NotifyPaymentReceived(context.Background(), uuid.NewString())

	require.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestNotifyPaymentReceived_BadRegistrationID(t *testing.T) {
	sender := new(mockEmail.EmailSender)
	n := newOrganizerNotifier(sender, &service.Services{}, enabledEmailConfig())

	err := n.NotifyPaymentReceived(context.Background(), "not-a-uuid")

	assert.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestNotifyPaymentReceived_MissingRegistration(t *testing.T) {
	sender := new(mockEmail.EmailSender)
	services := &service.Services{Registrations: &registrationsStub{}}
	n := newOrganizerNotifier(sender, services, enabledEmailConfig())

	err := n.NotifyPaymentReceived(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, service.ErrRegistrationNotFound)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}
