package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/service"
	"github.com/offroad-club/backend/pkg/logger"

	"go.uber.org/zap"
)

func (h *Handler) initRegistrationsRoutes(api *gin.RouterGroup) {
	registrations := api.Group("/registrations")
	{
		registrations.POST("", h.createRegistration)
		registrations.GET("", h.getMyRegistrations)
		registrations.DELETE("/:id", h.cancelRegistration)
	}
}

type createRegistrationRequest struct {
	EventID       string `json:"event_id" binding:"required,uuid"`
	UserID        string `json:"user_id" binding:"required"`
	FirstName     string `json:"first_name"`
	Username      string `json:"username"`
	AdultsCount   int    `json:"adults_count" binding:"required,min=1"`
	ChildrenCount int    `json:"children_count" binding:"omitempty,min=0"`
	ChildrenAges  string `json:"children_ages"`
	VehicleID     string `json:"vehicle_id" binding:"omitempty,uuid"`
	CarInfo       string `json:"car_info"`
	Phone         string `json:"phone" binding:"required,phonenumber"`
}

type registrationResponse struct {
	ID            string `json:"id"`
	EventID       string `json:"event_id"`
	UserID        string `json:"user_id"`
	FirstName     string `json:"first_name,omitempty"`
	Username      string `json:"username,omitempty"`
	AdultsCount   int    `json:"adults_count"`
	ChildrenCount int    `json:"children_count"`
	ChildrenAges  string `json:"children_ages,omitempty"`
	VehicleID     string `json:"vehicle_id,omitempty"`
	CarInfo       string `json:"car_info,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PaymentStatus string `json:"payment_status"`
	CreatedAt     string `json:"created_at"`
}

type createRegistrationResponse struct {
	Registration registrationResponse `json:"registration"`
	// PaymentURL leads to the hosted checkout; empty for free events.
	PaymentURL string `json:"payment_url,omitempty"`
}

type registrationsListResponse struct {
	Registrations []registrationResponse `json:"registrations"`
}

func toRegistrationResponse(registration *domain.Registration) registrationResponse {
	response := registrationResponse{
		ID:            registration.ID.String(),
		EventID:       registration.EventID.String(),
		UserID:        registration.UserID,
		FirstName:     registration.FirstName.String,
		Username:      registration.Username.String,
		AdultsCount:   registration.AdultsCount,
		ChildrenCount: registration.ChildrenCount,
		ChildrenAges:  registration.ChildrenAges.String,
		CarInfo:       registration.CarInfo.String,
		Phone:         registration.Phone.String,
		PaymentStatus: string(registration.PaymentStatus),
		CreatedAt:     registration.CreatedAt.Format(time.RFC3339),
	}
	if registration.VehicleID != nil {
		response.VehicleID = registration.VehicleID.String()
	}

	return response
}

// @Summary Create Registration
// @Tags Registrations
// @Description Register a crew for an event. Priced events come back pending with a payment URL; free events are paid right away.
// @ModuleID createRegistration
// @Accept  json
// @Produce  json
// @Param input body createRegistrationRequest true "registration data"
// @Success 201 {object} createRegistrationResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations [post]
func (h *Handler) createRegistration(c *gin.Context) {
	var request createRegistrationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.RegisterInput{
		EventID:       uuid.MustParse(request.EventID),
		UserID:        request.UserID,
		FirstName:     request.FirstName,
		Username:      request.Username,
		AdultsCount:   request.AdultsCount,
		ChildrenCount: request.ChildrenCount,
		ChildrenAges:  request.ChildrenAges,
		CarInfo:       request.CarInfo,
		Phone:         request.Phone,
	}
	if request.VehicleID != "" {
		vehicleID := uuid.MustParse(request.VehicleID)
		input.VehicleID = &vehicleID
	}

	result, err := h.services.Registrations.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, service.ErrEventArchived),
			errors.Is(err, service.ErrChildrenNotAllowed),
			errors.Is(err, service.ErrChildrenAgesRequired),
			errors.Is(err, service.ErrVehicleNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "already registered for this event"})
		default:
			logger.Error("failed to create registration", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create registration"})
		}
		return
	}

	c.JSON(http.StatusCreated, createRegistrationResponse{
		Registration: toRegistrationResponse(result.Registration),
		PaymentURL:   result.PaymentURL,
	})
}

// @Summary Get My Registrations
// @Tags Registrations
// @Description Registrations of the given platform user, newest last.
// @ModuleID getMyRegistrations
// @Accept  json
// @Produce  json
// @Param user_id query string true "platform user id"
// @Success 200 {object} registrationsListResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations [get]
func (h *Handler) getMyRegistrations(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	registrations, err := h.services.Registrations.GetByUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to get registrations", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get registrations"})
		return
	}

	response := registrationsListResponse{Registrations: make([]registrationResponse, 0, len(registrations))}
	for i := range registrations {
		response.Registrations = append(response.Registrations, toRegistrationResponse(&registrations[i]))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Cancel Registration
// @Tags Registrations
// @Description A member can withdraw their own registration while it is still unpaid. Paid ones are only removable by an admin.
// @ModuleID cancelRegistration
// @Accept  json
// @Produce  json
// @Param id path string true "Registration ID"
// @Param user_id query string true "platform user id"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /registrations/{id} [delete]
func (h *Handler) cancelRegistration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.services.Registrations.Cancel(c.Request.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		case errors.Is(err, service.ErrRegistrationPaid):
			c.JSON(http.StatusConflict, gin.H{"error": "paid registration cannot be cancelled"})
		default:
			logger.Error("failed to cancel registration", zap.Error(err), zap.String("id", id.String()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel registration"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
