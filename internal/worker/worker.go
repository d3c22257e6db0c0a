package worker

import (
	"context"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/service"
	emailProvider "github.com/offroad-club/backend/pkg/email"
)

type Workers struct {
	OrganizerNotifier OrganizerNotifier
}

type Deps struct {
	Services      *service.Services
	EmailProvider emailProvider.Sender
	Config        *config.Config
}

type OrganizerNotifier interface {
	NotifyPaymentReceived(ctx context.Context, registrationID string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		OrganizerNotifier: newOrganizerNotifier(deps.EmailProvider, deps.Services, deps.Config.Email),
	}
}
