package yoomoney

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/offroad-club/backend/internal/config"
)

var (
	ErrEmptyRegistrationID = errors.New("empty registration id")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
)

// LinkBuilder produces redirect URLs to the YooMoney hosted checkout. It is
// pure: no I/O, no state beyond the configured receiver and return URL.
type LinkBuilder struct {
	receiver    string
	quickpayURL string
	returnURL   string
}

func NewLinkBuilder(cfg config.PaymentConfig) *LinkBuilder {
	return &LinkBuilder{
		receiver:    cfg.Receiver,
		quickpayURL: cfg.QuickpayURL,
		returnURL:   cfg.ReturnURL,
	}
}

type LinkParams struct {
	RegistrationID string
	EventID        string
	Description    string
	Amount         int
}

// PaymentURL builds the checkout redirect: receiver wallet, reg_<id> label,
// target description, amount in whole rubles, bank-card payment hint and a
// success URL that drops the user back on the originating event view.
func (b *LinkBuilder) PaymentURL(p LinkParams) (string, error) {
	if p.RegistrationID == "" {
		return "", ErrEmptyRegistrationID
	}
	if p.Amount <= 0 {
		return "", ErrNonPositiveAmount
	}

	q := url.Values{}
	q.Set("receiver", b.receiver)
	q.Set("quickpay-form", "button")
	q.Set("targets", p.Description)
	q.Set("paymentType", "AC")
	q.Set("sum", strconv.Itoa(p.Amount))
	q.Set("label", Label(p.RegistrationID))
	q.Set("successURL", b.returnURL+"#/event/"+p.EventID)

	return b.quickpayURL + "?" + q.Encode(), nil
}

// Label renders the correlation token embedded into the checkout link and
// echoed back by the payment notification.
func Label(registrationID string) string {
	return LabelPrefix + registrationID
}
