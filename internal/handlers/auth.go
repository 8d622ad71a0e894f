package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cardtrack-dev/cardtrack/internal/auth"
	"github.com/cardtrack-dev/cardtrack/internal/dto"
	apierrors "github.com/cardtrack-dev/cardtrack/internal/errors"
	"github.com/cardtrack-dev/cardtrack/internal/middleware"
	"github.com/cardtrack-dev/cardtrack/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates identity-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	authz       *services.AuthzService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, authz *services.AuthzService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		authz:       authz,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login verifies credentials and issues an identity token whose subject is
// the user id.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  dto.ToUserDTO(*user),
	})
}

// DeleteUser removes a user and cascades to their cards and comments.
// Admin only.
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if isAdmin, err := h.authz.IsAdmin(actorID); err != nil || !isAdmin {
		apierrors.Forbidden(c, "Only an admin can delete users")
		return
	}

	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.NotFound(c, fmt.Sprintf("User not found with id %s", c.Param("id")))
		return
	}

	user, err := h.authService.DeleteUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s was deleted successfully", user.Email),
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.RespondWithError(c, http.StatusConflict,
			apierrors.NewAPIError(apierrors.ErrCodeDuplicateEmail, "Email address already in use"))
	case errors.Is(err, services.ErrEmailRequired):
		apierrors.RespondWithError(c, http.StatusConflict,
			apierrors.NewAPIError(apierrors.ErrCodeMissingField, "The email is required"))
	case errors.Is(err, services.ErrPasswordRequired):
		apierrors.RespondWithError(c, http.StatusConflict,
			apierrors.NewAPIError(apierrors.ErrCodeMissingField, "The password is required"))
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
