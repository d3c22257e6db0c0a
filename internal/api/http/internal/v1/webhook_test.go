package v1

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/service"
)

const testSecret = "s3cr3t"

type registrationsStub struct {
	service.Registrations

	statuses     map[string]domain.PaymentStatus
	confirmedIDs []string
	confirmErr   error
}

func newRegistrationsStub() *registrationsStub {
	return &registrationsStub{statuses: map[string]domain.PaymentStatus{}}
}

func (s *registrationsStub) ConfirmPayment(_ context.Context, registrationID string) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}

	s.confirmedIDs = append(s.confirmedIDs, registrationID)
	// Paid is terminal: confirming again changes nothing.
	s.statuses[registrationID] = domain.PaymentStatusPaid

	return nil
}

func newWebhookRouter(secret string, registrations service.Registrations) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	handler := NewHandler(
		&service.Services{Registrations: registrations},
		nil,
		&config.Config{Payment: config.PaymentConfig{Secret: secret}},
	)
	handler.initPaymentsRoutes(router.Group("/api/v1"))

	return router
}

func signedForm(secret string, override func(url.Values)) url.Values {
	form := url.Values{}
	form.Set("notification_type", "p2p-incoming")
	form.Set("operation_id", "op-1")
	form.Set("amount", "500.00")
	form.Set("currency", "643")
	form.Set("datetime", "2024-01-01T00:00:00Z")
	form.Set("sender", "41001")
	form.Set("codepro", "false")
	form.Set("label", "reg_42")

	if override != nil {
		override(form)
	}

	signString := strings.Join([]string{
		form.Get("notification_type"),
		form.Get("operation_id"),
		form.Get("amount"),
		form.Get("currency"),
		form.Get("datetime"),
		form.Get("sender"),
		form.Get("codepro"),
		secret,
		form.Get("label"),
	}, "&")
	sum := sha1.Sum([]byte(signString))
	form.Set("sha1_hash", hex.EncodeToString(sum[:]))

	return form
}

func postWebhook(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/api/v1/payments/yoomoney",
		strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestYoomoneyWebhook_ValidNotificationMarksPaid(t *testing.T) {
	registrations := newRegistrationsStub()
	registrations.statuses["42"] = domain.PaymentStatusPending
	router := newWebhookRouter(testSecret, registrations)

	recorder := postWebhook(router, signedForm(testSecret, nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
	assert.Equal(t, []string{"42"}, registrations.confirmedIDs)
	assert.Equal(t, domain.PaymentStatusPaid, registrations.statuses["42"])
}

func TestYoomoneyWebhook_KnownVector(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter(testSecret, registrations)

	form := url.Values{}
	form.Set("notification_type", "p2p")
	form.Set("operation_id", "123")
	form.Set("amount", "500.00")
	form.Set("currency", "643")
	form.Set("datetime", "2024-01-01T00:00:00Z")
	form.Set("sender", "41001")
	form.Set("codepro", "false")
	form.Set("label", "reg_42")
	form.Set("sha1_hash", "5f79ae4c25aca735edd459b1be098f068d3f460e")

	recorder := postWebhook(router, form)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
	assert.Equal(t, []string{"42"}, registrations.confirmedIDs)
}

func TestYoomoneyWebhook_TamperedHashRejected(t *testing.T) {
	registrations := newRegistrationsStub()
	registrations.statuses["42"] = domain.PaymentStatusPending
	router := newWebhookRouter(testSecret, registrations)

	form := signedForm(testSecret, nil)
	hash := form.Get("sha1_hash")
	flipped := "0"
	if hash[0] == '0' {
		flipped = "1"
	}
	form.Set("sha1_hash", flipped+hash[1:])

	recorder := postWebhook(router, form)

	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Invalid Hash", recorder.Body.String())
	assert.Empty(t, registrations.confirmedIDs)
	assert.Equal(t, domain.PaymentStatusPending, registrations.statuses["42"])
}

func TestYoomoneyWebhook_TamperedAmountRejected(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter(testSecret, registrations)

	form := signedForm(testSecret, nil)
	form.Set("amount", "1.00")

	recorder := postWebhook(router, form)

	require.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, "Invalid Hash", recorder.Body.String())
	assert.Empty(t, registrations.confirmedIDs)
}

func TestYoomoneyWebhook_NoLabelAcknowledgedWithoutWrites(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter(testSecret, registrations)

	form := signedForm(testSecret, func(form url.Values) {
		form.Del("label")
	})

	recorder := postWebhook(router, form)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
	assert.Empty(t, registrations.confirmedIDs)
}

func TestYoomoneyWebhook_MissingSecret(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter("", registrations)

	recorder := postWebhook(router, signedForm(testSecret, nil))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Server Config Error: Missing Secret", recorder.Body.String())
	assert.Empty(t, registrations.confirmedIDs)
}

func TestYoomoneyWebhook_StoreFailurePropagatesAsServerError(t *testing.T) {
	registrations := newRegistrationsStub()
	registrations.confirmErr = errors.New("connection refused")
	router := newWebhookRouter(testSecret, registrations)

	recorder := postWebhook(router, signedForm(testSecret, nil))

	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.True(t, strings.HasPrefix(recorder.Body.String(), "DB Update Failed: "))
	assert.Contains(t, recorder.Body.String(), "connection refused")
}

func TestYoomoneyWebhook_RedeliveryIsIdempotent(t *testing.T) {
	registrations := newRegistrationsStub()
	registrations.statuses["42"] = domain.PaymentStatusPending
	router := newWebhookRouter(testSecret, registrations)

	form := signedForm(testSecret, nil)

	first := postWebhook(router, form)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, domain.PaymentStatusPaid, registrations.statuses["42"])

	second := postWebhook(router, form)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "OK", second.Body.String())
	assert.Equal(t, domain.PaymentStatusPaid, registrations.statuses["42"])
}

func TestYoomoneyWebhook_NonPostRejected(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter(testSecret, registrations)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/payments/yoomoney", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
	assert.Empty(t, registrations.confirmedIDs)
}

func TestYoomoneyWebhook_ForeignLabelStillConfirmsVerbatim(t *testing.T) {
	registrations := newRegistrationsStub()
	router := newWebhookRouter(testSecret, registrations)

	form := signedForm(testSecret, func(form url.Values) {
		form.Set("label", "order-99")
	})

	recorder := postWebhook(router, form)

	// Labels without our prefix pass through untouched; the store simply
	// finds no matching row and the notification is still acked.
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"order-99"}, registrations.confirmedIDs)
}
