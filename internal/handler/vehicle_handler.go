package handler

import (
	"errors"
	"net/http"

	"travel_fleet/internal/middleware"
	"travel_fleet/internal/model"
	"travel_fleet/internal/service"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VehicleHandler handles fleet vehicle requests
type VehicleHandler struct {
	service service.VehicleService
	log     *zap.Logger
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(s service.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{service: s, log: log}
}

func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req model.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationErrors(c, utils.FormatValidationErrors(err))
		return
	}

	vehicle, err := h.service.Add(c.Request.Context(), owner, req)
	if err != nil {
		if errors.Is(err, service.ErrPlateTaken) {
			utils.RespondError(c, http.StatusConflict, "Vehicle with this license plate already exists")
			return
		}
		h.log.Error("failed to add vehicle", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to add vehicle")
		return
	}

	utils.Respond(c, http.StatusCreated, "Vehicle added successfully", gin.H{
		"vehicle": vehicle,
	})
}

func (h *VehicleHandler) GetMyVehicles(c *gin.Context) {
	owner, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, limit := pageParams(c)

	vehicles, pagination, err := h.service.GetByOwner(c.Request.Context(), owner, page, limit)
	if err != nil {
		h.log.Error("failed to list own vehicles", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	utils.Respond(c, http.StatusOK, "Vehicles retrieved successfully", gin.H{
		"vehicles":   vehicles,
		"pagination": pagination,
	})
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	page, limit := pageParams(c)

	vehicles, pagination, err := h.service.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to list all vehicles", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	utils.Respond(c, http.StatusOK, "All vehicles retrieved successfully", gin.H{
		"vehicles":   vehicles,
		"pagination": pagination,
	})
}

func (h *VehicleHandler) UpdateVehicleStatus(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var req model.UpdateVehicleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationErrors(c, utils.FormatValidationErrors(err))
		return
	}

	vehicle, err := h.service.UpdateStatus(c.Request.Context(), id, actor, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVehicleNotFound):
			utils.RespondError(c, http.StatusNotFound, "Vehicle not found")
		case errors.Is(err, service.ErrNotVehicleOwner):
			utils.RespondError(c, http.StatusForbidden, "Access denied. You can only update your own vehicles")
		default:
			h.log.Error("failed to update vehicle status", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to update vehicle status")
		}
		return
	}

	utils.Respond(c, http.StatusOK, "Vehicle status updated successfully", gin.H{
		"vehicle": vehicle,
	})
}

// RegisterVehicleRoutes registers vehicle routes
func (h *VehicleHandler) RegisterVehicleRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	vehicles := rg.Group("/vehicles")
	vehicles.Use(authMW)
	{
		vehicles.POST("/add", middleware.RequireOwner(), h.AddVehicle)
		vehicles.GET("/my", middleware.RequireOwner(), h.GetMyVehicles)
		vehicles.GET("", middleware.RequireAdmin(), h.GetAllVehicles)
		vehicles.PATCH("/:id/status", middleware.RequireAdminOrOwner(), h.UpdateVehicleStatus)
	}
}
