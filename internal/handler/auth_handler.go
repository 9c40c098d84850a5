package handler

import (
	"errors"
	"net/http"

	"travel_fleet/internal/middleware"
	"travel_fleet/internal/model"
	"travel_fleet/internal/service"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	log     *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationErrors(c, utils.FormatValidationErrors(err))
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.RespondError(c, http.StatusConflict, service.ErrEmailTaken.Error())
			return
		}
		h.log.Error("failed to register user", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.Respond(c, http.StatusCreated, "User registered successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationErrors(c, utils.FormatValidationErrors(err))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.RespondError(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		h.log.Error("failed to login user", zap.Error(err))
		utils.RespondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	utils.Respond(c, http.StatusOK, "Login successful", gin.H{
		"user":  user,
		"token": token,
	})
}

// Profile echoes the identity resolved by the credential verifier
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	utils.Respond(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user": user,
	})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	rg.GET("/profile", authMW, h.Profile)
}
