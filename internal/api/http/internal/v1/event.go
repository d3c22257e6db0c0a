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

func (h *Handler) initEventsRoutes(api *gin.RouterGroup) {
	events := api.Group("/events")
	{
		events.GET("", h.getEventsList)
		events.GET("/:id", h.getEventByID)
	}
}

type eventResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Date            string `json:"date"`
	Location        string `json:"location"`
	Description     string `json:"description,omitempty"`
	Price           int    `json:"price"`
	ImageURL        string `json:"image_url,omitempty"`
	ReportLink      string `json:"report_link,omitempty"`
	WarningText     string `json:"warning_text,omitempty"`
	ChildrenAllowed bool   `json:"children_allowed"`
	IsArchived      bool   `json:"is_archived"`
}

type eventsListResponse struct {
	Events []eventResponse `json:"events"`
}

func toEventResponse(event *domain.Event) eventResponse {
	return eventResponse{
		ID:              event.ID.String(),
		Title:           event.Title,
		Date:            event.Date.Format(time.RFC3339),
		Location:        event.Location,
		Description:     event.Description.String,
		Price:           event.Price,
		ImageURL:        event.ImageURL.String,
		ReportLink:      event.ReportLink.String,
		WarningText:     event.WarningText.String,
		ChildrenAllowed: event.ChildrenAllowed,
		IsArchived:      event.IsArchived,
	}
}

// @Summary Get Events List
// @Tags Events
// @Description Upcoming and past trips, ordered by date. Archived events are hidden.
// @ModuleID getEventsList
// @Accept  json
// @Produce  json
// @Success 200 {object} eventsListResponse
// @Failure 500 {object} ErrorStruct
// @Router /events [get]
func (h *Handler) getEventsList(c *gin.Context) {
	events, err := h.services.Events.GetAll(c.Request.Context(), false)
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

// @Summary Get Event By ID
// @Tags Events
// @ModuleID getEventByID
// @Accept  json
// @Produce  json
// @Param id path string true "Event ID"
// @Success 200 {object} eventResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /events/{id} [get]
func (h *Handler) getEventByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, err := h.services.Events.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logger.Error("failed to get event by id", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get event"})
		return
	}

	c.JSON(http.StatusOK, toEventResponse(event))
}
