package v1

import (
	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/internal/service"
	"github.com/offroad-club/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Offroad Club Booking API
// @version 1.0
// @description Booking backend for club events: calendar, crew registrations, garage and payment confirmation.

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initEventsRoutes(v1)
	h.initRegistrationsRoutes(v1)
	h.initGarageRoutes(v1)
	h.initPaymentsRoutes(v1)
	h.initAdminRoutes(v1)
}
