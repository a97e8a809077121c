package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/interfaces/http/response"
	"customer-onboarding.backend/internal/usecases"
)

// CustomerHandler handles customer profile and onboarding endpoints
type CustomerHandler struct {
	customerUsecase *usecases.CustomerUsecase
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerUsecase *usecases.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{
		customerUsecase: customerUsecase,
	}
}

// GetProfile returns the customer profile
// GET /api/v1/customers/profile
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	customer, err := h.customerUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Profile retrieved successfully",
		"customer": customer,
	})
}

// UpdateProfile applies a partial profile update
// PUT /api/v1/customers/profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	var input entities.UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if input.IsEmpty() {
		response.Error(c, domainerrors.BadRequest("No fields to update"))
		return
	}

	customer, err := h.customerUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Profile updated successfully",
		"customer": customer,
	})
}

// GetStatus returns onboarding status, step and recent activities
// GET /api/v1/customers/status
func (h *CustomerHandler) GetStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	customer, activities, err := h.customerUsecase.GetStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":            customer.OnboardingStatus,
		"current_step":      customer.OnboardingStep,
		"customer":          customer.Summary(),
		"recent_activities": activities,
	})
}

// UpdateStatus moves the onboarding state machine
// PUT /api/v1/customers/status
func (h *CustomerHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	var input entities.TransitionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.customerUsecase.Transition(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":  "Onboarding step updated successfully",
		"customer": customer,
	})
}

// GetActivities returns the activity log, most recent first
// GET /api/v1/customers/activities
func (h *CustomerHandler) GetActivities(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	activities, err := h.customerUsecase.ListActivities(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":    "Activities retrieved successfully",
		"count":      len(activities),
		"activities": activities,
	})
}
