package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/service"
	emailProvider "github.com/offroad-club/backend/pkg/email"
	"github.com/offroad-club/backend/pkg/logger"
)

type organizerNotifier struct {
	sender   emailProvider.Sender
	services *service.Services
	config   config.EmailConfig
}

func newOrganizerNotifier(
	sender emailProvider.Sender,
	services *service.Services,
	config config.EmailConfig,
) *organizerNotifier {
	return &organizerNotifier{
		sender:   sender,
		services: services,
		config:   config,
	}
}

type paymentReceivedEmailInput struct {
	EventTitle     string
	RegistrationID string
	FirstName      string
	Username       string
	Phone          string
	AdultsCount    int
	ChildrenCount  int
}

// NotifyPaymentReceived mails the organizers that a registration has been
// paid. It runs from the queue, detached from the webhook request, so a
// failure here only triggers a task retry and never a processor redelivery.
func (n *organizerNotifier) NotifyPaymentReceived(ctx context.Context, registrationID string) error {
	if !n.config.Enabled || n.config.OrganizerEmail == "" {
		logger.Debug("organizer email disabled, dropping payment notification")
		return nil
	}

	id, err := uuid.Parse(registrationID)
	if err != nil {
		return fmt.Errorf("parse registration id failed: %w", err)
	}

	registration, err := n.services.Registrations.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get registration failed: %w", err)
	}

	event, err := n.services.Events.GetByID(ctx, registration.EventID)
	if err != nil {
		return fmt.Errorf("get event failed: %w", err)
	}

	templateInput := paymentReceivedEmailInput{
		EventTitle:     event.Title,
		RegistrationID: registrationID,
		FirstName:      registration.FirstName.String,
		Username:       registration.Username.String,
		Phone:          registration.Phone.String,
		AdultsCount:    registration.AdultsCount,
		ChildrenCount:  registration.ChildrenCount,
	}
	sendInput := emailProvider.SendEmailInput{
		Subject: "Оплата получена: " + event.Title,
		To:      n.config.OrganizerEmail,
	}

	if err := sendInput.GenerateBodyFromHTML(n.config.Templates.PaymentReceived, templateInput); err != nil {
		return fmt.Errorf("generate email failed: %w", err)
	}

	if err := n.sender.Send(sendInput); err != nil {
		return fmt.Errorf("send email failed: %w", err)
	}

	return nil
}
