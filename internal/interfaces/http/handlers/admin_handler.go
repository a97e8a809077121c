package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/interfaces/http/response"
	"customer-onboarding.backend/internal/usecases"
)

// AdminHandler handles the privileged oversight endpoints. The routes are
// gated by RequireAdmin; ownership checks do not apply here.
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
	}
}

// GetOverview returns the dashboard counters and recent users
// GET /api/v1/admin/overview
func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := h.adminUsecase.GetOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":      "Admin overview retrieved successfully",
		"stats":        overview.Stats,
		"recent_users": overview.RecentUsers,
	})
}

// ListUsers lists users with optional role filter and pagination
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	var role *entities.UserRole
	if raw := c.Query("role"); raw != "" {
		r := entities.UserRole(raw)
		if !r.Valid() {
			response.Error(c, domainerrors.BadRequest(`Invalid role. Must be "broker" or "admin"`))
			return
		}
		role = &r
	}

	users, err := h.adminUsecase.ListUsers(c.Request.Context(), role, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"count":   len(users),
		"users":   users,
	})
}

// UpdateUserRole promotes or demotes a user
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized - No user context"))
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user id"))
		return
	}

	var input entities.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(`Invalid role. Must be "broker" or "admin"`))
		return
	}

	user, err := h.adminUsecase.UpdateUserRole(c.Request.Context(), actorID, targetID, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": fmt.Sprintf("User role updated to %s successfully", user.Role),
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// ListCustomers lists all customer profiles with their users
// GET /api/v1/admin/customers
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	customers, err := h.adminUsecase.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":   "Customers retrieved successfully",
		"count":     len(customers),
		"customers": customers,
	})
}

// GetCustomer returns one customer with documents and recent activities
// GET /api/v1/admin/customers/:id
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid customer id"))
		return
	}

	detail, err := h.adminUsecase.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message":    "Customer details retrieved successfully",
		"customer":   detail.Customer,
		"email":      detail.Email,
		"role":       detail.Role,
		"documents":  detail.Documents,
		"activities": detail.Activities,
	})
}
