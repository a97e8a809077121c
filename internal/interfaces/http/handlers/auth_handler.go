package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/interfaces/http/response"
	"customer-onboarding.backend/internal/usecases"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   auth.Token,
		"user": gin.H{
			"id":    auth.User.ID,
			"email": auth.User.Email,
			"role":  auth.User.Role,
		},
		"customer": gin.H{
			"id":                auth.Customer.ID,
			"first_name":        auth.Customer.FirstName,
			"last_name":         auth.Customer.LastName,
			"onboarding_status": auth.Customer.OnboardingStatus,
		},
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
			return
		}
		response.Error(c, err)
		return
	}

	var customer interface{}
	if auth.Customer != nil {
		customer = auth.Customer.Summary()
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   auth.Token,
		"user": gin.H{
			"id":    auth.User.ID,
			"email": auth.User.Email,
			"role":  auth.User.Role,
		},
		"customer": customer,
	})
}

// GetProfile returns the authenticated user with its customer profile
// GET /api/v1/auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	user, customer, err := h.authUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var customerPayload interface{}
	if customer != nil {
		customerPayload = customer
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
		"customer": customerPayload,
	})
}
