package yoomoney

import (
	"net/url"
	"testing"

	"github.com/offroad-club/backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLinkBuilder() *LinkBuilder {
	return NewLinkBuilder(config.PaymentConfig{
		Receiver:    "410011111111111",
		ReturnURL:   "https://club.example/app/",
		QuickpayURL: "https://yoomoney.ru/quickpay/confirm.xml",
	})
}

func TestPaymentURL(t *testing.T) {
	b := testLinkBuilder()

	raw, err := b.PaymentURL(LinkParams{
		RegistrationID: "0196fa00-1111-7000-8000-000000000042",
		EventID:        "0196fa00-2222-7000-8000-000000000007",
		Description:    "Замес в Дмитрове",
		Amount:         1500,
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "yoomoney.ru", u.Host)
	assert.Equal(t, "/quickpay/confirm.xml", u.Path)

	q := u.Query()
	assert.Equal(t, "410011111111111", q.Get("receiver"))
	assert.Equal(t, "reg_0196fa00-1111-7000-8000-000000000042", q.Get("label"))
	assert.Equal(t, "Замес в Дмитрове", q.Get("targets"))
	assert.Equal(t, "1500", q.Get("sum"))
	assert.Equal(t, "AC", q.Get("paymentType"))
	assert.Equal(t, "https://club.example/app/#/event/0196fa00-2222-7000-8000-000000000007", q.Get("successURL"))
}

func TestPaymentURL_EmptyRegistrationID(t *testing.T) {
	b := testLinkBuilder()

	_, err := b.PaymentURL(LinkParams{Amount: 100})

	assert.ErrorIs(t, err, ErrEmptyRegistrationID)
}

func TestPaymentURL_NonPositiveAmount(t *testing.T) {
	b := testLinkBuilder()

	for _, amount := range []int{0, -500} {
		_, err := b.PaymentURL(LinkParams{RegistrationID: "abc", Amount: amount})
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "reg_42", Label("42"))
}
