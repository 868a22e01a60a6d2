package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tasktrack/tasktrack-api/internal/dto"
	apierrors "github.com/tasktrack/tasktrack-api/internal/errors"
	"github.com/tasktrack/tasktrack-api/internal/middleware"
	"github.com/tasktrack/tasktrack-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a regular account and returns a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Token: result.Token, User: dto.ToUserDTO(*result.User)})
}

// Login authenticates a user, returns a token and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	user := result.User
	if err := middleware.SaveSession(c, user.ID.Hex(), user.Role, user.Email); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Token: result.Token, User: dto.ToUserDTO(*user)})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearSession(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// CheckAdminExists lets the client decide whether to offer first-run admin setup.
func (h *AuthHandler) CheckAdminExists(c *gin.Context) {
	exists, total, err := h.authService.AdminExists(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"adminExists": exists,
		"totalUsers":  total,
	})
}
