package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/offroad-club/backend/internal/payment/yoomoney"
	"github.com/offroad-club/backend/pkg/logger"

	"go.uber.org/zap"
)

func (h *Handler) initPaymentsRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	{
		payments.POST("/yoomoney", h.yoomoneyWebhook)
	}
}

// @Summary YooMoney Payment Notification
// @Tags Payments
// @Description Endpoint the payment processor posts operation notifications to. Responses are plain text; anything but 2xx makes the processor redeliver.
// @ModuleID yoomoneyWebhook
// @Accept x-www-form-urlencoded
// @Produce plain
// @Success 200 {string} string "OK"
// @Failure 403 {string} string "Invalid Hash"
// @Failure 500 {string} string "Server Config Error: Missing Secret"
// @Router /payments/yoomoney [post]
func (h *Handler) yoomoneyWebhook(c *gin.Context) {
	// Without the secret no notification can authenticate. Refusing with a
	// 5xx keeps the processor retrying until the deployment is fixed.
	secret := h.config.Payment.Secret
	if secret == "" {
		logger.Error("payment notification received but notification secret is not configured")
		c.String(http.StatusInternalServerError, "Server Config Error: Missing Secret")
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		logger.Error("parse payment notification form failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Bad Form Body")
		return
	}

	notification := yoomoney.ParseNotification(c.Request.PostForm)

	if err := notification.Verify(secret); err != nil {
		logger.Warn("payment notification failed hash check",
			zap.String("operation_id", notification.OperationID),
			zap.String("label", notification.Label))
		c.String(http.StatusForbidden, "Invalid Hash")
		return
	}

	registrationID, ok := notification.RegistrationID()
	if !ok {
		// Authentic but unlabeled, e.g. a direct wallet top-up. Ack it so
		// the processor stops redelivering.
		logger.Info("payment notification without label acknowledged",
			zap.String("operation_id", notification.OperationID))
		c.String(http.StatusOK, "OK")
		return
	}

	if err := h.services.Registrations.ConfirmPayment(c.Request.Context(), registrationID); err != nil {
		logger.Error("confirm payment failed", zap.Error(err),
			zap.String("registration_id", registrationID),
			zap.String("operation_id", notification.OperationID))
		c.String(http.StatusInternalServerError, "DB Update Failed: "+err.Error())
		return
	}

	logger.Info("payment confirmed",
		zap.String("registration_id", registrationID),
		zap.String("operation_id", notification.OperationID),
		zap.String("amount", notification.Amount))
	c.String(http.StatusOK, "OK")
}
