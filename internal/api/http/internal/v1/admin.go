package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/offroad-club/backend/internal/service"
	"github.com/offroad-club/backend/pkg/logger"

	"go.uber.org/zap"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		admin.POST("/login", h.adminLogin)

		authenticated := admin.Group("/", h.adminIdentityMiddleware)
		{
			authenticated.GET("events", h.adminGetEvents)
			authenticated.POST("events", h.adminCreateEvent)
			authenticated.PUT("events/:id", h.adminUpdateEvent)
			authenticated.DELETE("events/:id", h.adminDeleteEvent)

			authenticated.GET("events/:id/registrations", h.adminGetEventRegistrations)
			authenticated.DELETE("registrations/:id", h.adminDeleteRegistration)
		}
	}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type adminLoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type eventRequest struct {
	Title           string `json:"title" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Location        string `json:"location" binding:"required"`
	Description     string `json:"description"`
	Price           int    `json:"price" binding:"omitempty,min=0"`
	ImageURL        string `json:"image_url" binding:"omitempty,url"`
	ReportLink      string `json:"report_link" binding:"omitempty,url"`
	WarningText     string `json:"warning_text"`
	ChildrenAllowed bool   `json:"children_allowed"`
	IsArchived      bool   `json:"is_archived"`
}

func (r eventRequest) toInput() (service.EventInput, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return service.EventInput{}, err
	}

	return service.EventInput{
		Title:           r.Title,
		Date:            date,
		Location:        r.Location,
		Description:     r.Description,
		Price:           r.Price,
		ImageURL:        r.ImageURL,
		ReportLink:      r.ReportLink,
		WarningText:     r.WarningText,
		ChildrenAllowed: r.ChildrenAllowed,
		IsArchived:      r.IsArchived,
	}, nil
}

// @Summary Admin Login
// @Tags Admin
// @ModuleID adminLogin
// @Accept  json
// @Produce  json
// @Param input body adminLoginRequest true "credentials"
// @Success 200 {object} adminLoginResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/login [post]
func (h *Handler) adminLogin(c *gin.Context) {
	var request adminLoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.services.Admin.Login(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Error("admin login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, adminLoginResponse{
		AccessToken: tokens.AccessToken,
		ExpiresIn:   int64(tokens.AccessTTL.Seconds()),
	})
}

// @Summary Admin Get Events
// @Security AdminAuth
// @Tags Admin
// @Description Full calendar including archived events.
// @ModuleID adminGetEvents
// @Accept  json
// @Produce  json
// @Success 200 {object} eventsListResponse
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/events [get]
func (h *Handler) adminGetEvents(c *gin.Context) {
	events, err := h.services.Events.GetAll(c.Request.Context(), true)
	if err != nil {
		logger.Error("failed to get events list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get events list"})
		return
	}

	response := eventsListResponse{Events: make([]eventResponse, 0, len(events))}
	for i := range events {
		response.Events = append(response.Events, toEventResponse(&events[i]))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Admin Create Event
// @Security AdminAuth
// @Tags Admin
// @ModuleID adminCreateEvent
// @Accept  json
// @Produce  json
// @Param input body eventRequest true "event data"
// @Success 201 {object} eventResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/events [post]
func (h *Handler) adminCreateEvent(c *gin.Context) {
	var request eventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := request.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected RFC 3339"})
		return
	}

	event, err := h.services.Events.Create(c.Request.Context(), input)
	if err != nil {
		logger.Error("failed to create event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, toEventResponse(event))
}

// @Summary Admin Update Event
// @Security AdminAuth
// @Tags Admin
// @ModuleID adminUpdateEvent
// @Accept  json
// @Produce  json
// @Param id path string true "Event ID"
// @Param input body eventRequest true "event data"
// @Success 200 {object} eventResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/events/{id} [put]
func (h *Handler) adminUpdateEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var request eventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := request.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected RFC 3339"})
		return
	}

	event, err := h.services.Events.Update(c.Request.Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logger.Error("failed to update event", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}

// @Summary Admin Delete Event
// @Security AdminAuth
// @Tags Admin
// @Description Deletes an event together with its registrations.
// @ModuleID adminDeleteEvent
// @Accept  json
// @Produce  json
// @Param id path string true "Event ID"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/events/{id} [delete]
func (h *Handler) adminDeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	if err := h.services.Events.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logger.Error("failed to delete event", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Admin Get Event Registrations
// @Security AdminAuth
// @Tags Admin
// @Description Crew list for an event, payment status included.
// @ModuleID adminGetEventRegistrations
// @Accept  json
// @Produce  json
// @Param id path string true "Event ID"
// @Success 200 {object} registrationsListResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/events/{id}/registrations [get]
func (h *Handler) adminGetEventRegistrations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	registrations, err := h.services.Registrations.GetByEvent(c.Request.Context(), id)
	if err != nil {
		logger.Error("failed to get event registrations", zap.Error(err), zap.String("event_id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get registrations"})
		return
	}

	response := registrationsListResponse{Registrations: make([]registrationResponse, 0, len(registrations))}
	for i := range registrations {
		response.Registrations = append(response.Registrations, toRegistrationResponse(&registrations[i]))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Admin Delete Registration
// @Security AdminAuth
// @Tags Admin
// @Description Removes any registration regardless of payment status.
// @ModuleID adminDeleteRegistration
// @Accept  json
// @Produce  json
// @Param id path string true "Registration ID"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /admin/registrations/{id} [delete]
func (h *Handler) adminDeleteRegistration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration id"})
		return
	}

	if err := h.services.Registrations.AdminDelete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		logger.Error("failed to delete registration", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete registration"})
		return
	}

	c.Status(http.StatusNoContent)
}
