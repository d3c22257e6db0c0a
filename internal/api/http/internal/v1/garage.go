package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/offroad-club/backend/internal/domain"
	"github.com/offroad-club/backend/internal/service"
	"github.com/offroad-club/backend/pkg/logger"

	"go.uber.org/zap"
)

func (h *Handler) initGarageRoutes(api *gin.RouterGroup) {
	garage := api.Group("/garage")
	{
		garage.GET("", h.getGarage)
		garage.POST("", h.addVehicle)
		garage.DELETE("/:id", h.removeVehicle)
	}
}

type addVehicleRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Tires    string `json:"tires"`
	HasWinch bool   `json:"has_winch"`
}

type vehicleResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Model    string `json:"model"`
	Tires    string `json:"tires,omitempty"`
	HasWinch bool   `json:"has_winch"`
}

type vehiclesListResponse struct {
	Vehicles []vehicleResponse `json:"vehicles"`
}

func toVehicleResponse(vehicle *domain.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:       vehicle.ID.String(),
		UserID:   vehicle.UserID,
		Model:    vehicle.Model,
		Tires:    vehicle.Tires.String,
		HasWinch: vehicle.HasWinch,
	}
}

// @Summary Get Garage
// @Tags Garage
// @Description Saved vehicles of the given platform user.
// @ModuleID getGarage
// @Accept  json
// @Produce  json
// @Param user_id query string true "platform user id"
// @Success 200 {object} vehiclesListResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /garage [get]
func (h *Handler) getGarage(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	vehicles, err := h.services.Garage.List(c.Request.Context(), userID)
	if err != nil {
		logger.Error("failed to get garage", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get garage"})
		return
	}

	response := vehiclesListResponse{Vehicles: make([]vehicleResponse, 0, len(vehicles))}
	for i := range vehicles {
		response.Vehicles = append(response.Vehicles, toVehicleResponse(&vehicles[i]))
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Add Vehicle
// @Tags Garage
// @ModuleID addVehicle
// @Accept  json
// @Produce  json
// @Param input body addVehicleRequest true "vehicle data"
// @Success 201 {object} vehicleResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /garage [post]
func (h *Handler) addVehicle(c *gin.Context) {
	var request addVehicleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.services.Garage.Add(c.Request.Context(), service.VehicleInput{
		UserID:   request.UserID,
		Model:    request.Model,
		Tires:    request.Tires,
		HasWinch: request.HasWinch,
	})
	if err != nil {
		logger.Error("failed to add vehicle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add vehicle"})
		return
	}

	c.JSON(http.StatusCreated, toVehicleResponse(vehicle))
}

// @Summary Remove Vehicle
// @Tags Garage
// @Description Removes a vehicle from the caller's garage. Registrations that referenced it keep their snapshot of the car info.
// @ModuleID removeVehicle
// @Accept  json
// @Produce  json
// @Param id path string true "Vehicle ID"
// @Param user_id query string true "platform user id"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /garage/{id} [delete]
func (h *Handler) removeVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	if err := h.services.Garage.Remove(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrVehicleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		logger.Error("failed to remove vehicle", zap.Error(err), zap.String("id", id.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove vehicle"})
		return
	}

	c.Status(http.StatusNoContent)
}
