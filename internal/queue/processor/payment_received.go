package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/offroad-club/backend/internal/queue/task"
	"github.com/offroad-club/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type paymentReceivedProcessor struct {
	workers *worker.Workers
}

func NewPaymentReceivedProcessor(workers *worker.Workers) *paymentReceivedProcessor {
	return &paymentReceivedProcessor{
		workers: workers,
	}
}

func (p *paymentReceivedProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.PaymentReceived
	if err := json.Unmarshal(t.Payload(), &data); err != nil {
		return fmt.Errorf("process payment received task json unmarshal failed: %w", err)
	}

	if err := p.workers.OrganizerNotifier.NotifyPaymentReceived(ctx, data.RegistrationID); err != nil {
		return fmt.Errorf("notify organizer about payment failed: %w", err)
	}

	return nil
}
