package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	PaymentReceivedTaskName  = "paymentReceivedTask"
	PaymentReceivedQueueName = "paymentReceivedQueue"
)

type PaymentReceived struct {
	RegistrationID string `json:"registration_id"`
}

func NewPaymentReceivedTask(registrationID string) (*asynq.Task, error) {
	data := PaymentReceived{RegistrationID: registrationID}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		PaymentReceivedTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(PaymentReceivedQueueName),
	), nil
}
