package handler

import (
	"errors"
	"net/http"

	"travel_fleet/internal/middleware"
	"travel_fleet/internal/service"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserHandler handles user administration requests
type UserHandler struct {
	service service.UserService
	log     *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{service: s, log: log}
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	page, limit := pageParams(c)

	users, pagination, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	utils.Respond(c, http.StatusOK, "Users retrieved successfully", gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.RespondError(c, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("failed to get user by id", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to retrieve user")
		return
	}

	utils.Respond(c, http.StatusOK, "User retrieved successfully", gin.H{
		"user": user,
	})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			utils.RespondError(c, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrSelfDelete):
			utils.RespondError(c, http.StatusBadRequest, "You cannot delete your own account")
		default:
			h.log.Error("failed to delete user", zap.Error(err))
			utils.RespondError(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	utils.Respond(c, http.StatusOK, "User deleted successfully", gin.H{
		"deletedUser": gin.H{
			"id":    deleted.ID,
			"email": deleted.Email,
			"role":  deleted.Role,
		},
	})
}

// RegisterUserRoutes registers user routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.Use(authMW)
	{
		users.GET("", middleware.RequireAdmin(), h.GetAllUsers)
		users.GET("/:id", middleware.RequireSelfOrAdmin("id"), h.GetUserByID)
		users.DELETE("/delete/:id", middleware.RequireAdmin(), h.DeleteUser)
	}
}
