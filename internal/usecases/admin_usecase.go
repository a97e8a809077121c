package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/domain/repositories"
	"customer-onboarding.backend/pkg/logger"
	"customer-onboarding.backend/pkg/redis"
	"customer-onboarding.backend/pkg/utils"
)

const (
	defaultListLimit = 50

	overviewCacheKey = "admin:overview"
	overviewCacheTTL = 30 * time.Second
)

// OverviewStats holds the dashboard counters
type OverviewStats struct {
	TotalBrokers    int64 `json:"total_brokers"`
	TotalAdmins     int64 `json:"total_admins"`
	TotalCustomers  int64 `json:"total_customers"`
	TotalDocuments  int64 `json:"total_documents"`
	TotalActivities int64 `json:"total_activities"`
}

// Overview is the admin dashboard payload
type Overview struct {
	Stats       OverviewStats                    `json:"stats"`
	RecentUsers []*repositories.UserWithCustomer `json:"recent_users"`
}

// CustomerDetail is the admin drill-down payload for one customer
type CustomerDetail struct {
	Customer   *entities.Customer             `json:"customer"`
	Email      string                         `json:"email"`
	Role       entities.UserRole              `json:"role"`
	Documents  []*entities.Document           `json:"documents"`
	Activities []*entities.OnboardingActivity `json:"activities"`
}

// AdminUsecase implements the privileged oversight operations. All callers
// must already have passed the admin role gate.
type AdminUsecase struct {
	userRepo     repositories.UserRepository
	customerRepo repositories.CustomerRepository
	documentRepo repositories.DocumentRepository
	activityRepo repositories.ActivityRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	customerRepo repositories.CustomerRepository,
	documentRepo repositories.DocumentRepository,
	activityRepo repositories.ActivityRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		documentRepo: documentRepo,
		activityRepo: activityRepo,
	}
}

// GetOverview returns the dashboard counters and the 10 most recent users.
// When Redis is configured the result is served cache-aside with a short
// TTL; cache failures fall through to the database.
func (u *AdminUsecase) GetOverview(ctx context.Context) (*Overview, error) {
	if redis.Enabled() {
		if cached, err := redis.Get(ctx, overviewCacheKey); err == nil {
			var overview Overview
			if err := json.Unmarshal([]byte(cached), &overview); err == nil {
				return &overview, nil
			}
		}
	}

	overview, err := u.buildOverview(ctx)
	if err != nil {
		return nil, err
	}

	if redis.Enabled() {
		if payload, err := json.Marshal(overview); err == nil {
			if err := redis.Set(ctx, overviewCacheKey, payload, overviewCacheTTL); err != nil {
				logger.Warn(ctx, "failed to cache admin overview", zap.Error(err))
			}
		}
	}
	return overview, nil
}

func (u *AdminUsecase) buildOverview(ctx context.Context) (*Overview, error) {
	var (
		overview Overview
		err      error
	)

	if overview.Stats.TotalBrokers, err = u.userRepo.CountByRole(ctx, entities.UserRoleBroker); err != nil {
		return nil, err
	}
	if overview.Stats.TotalAdmins, err = u.userRepo.CountByRole(ctx, entities.UserRoleAdmin); err != nil {
		return nil, err
	}
	if overview.Stats.TotalCustomers, err = u.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.Stats.TotalDocuments, err = u.documentRepo.Count(ctx); err != nil {
		return nil, err
	}
	if overview.Stats.TotalActivities, err = u.activityRepo.Count(ctx); err != nil {
		return nil, err
	}

	if overview.RecentUsers, err = u.userRepo.List(ctx, nil, 10, 0); err != nil {
		return nil, err
	}
	return &overview, nil
}

// ListUsers lists users with an optional role filter
func (u *AdminUsecase) ListUsers(ctx context.Context, role *entities.UserRole, limit, offset int) ([]*repositories.UserWithCustomer, error) {
	page := utils.GetPaginationParams(limit, offset, defaultListLimit)
	return u.userRepo.List(ctx, role, page.Limit, page.Offset)
}

// UpdateUserRole sets a user's role. An admin may not demote itself: the
// guard compares the acting identity against the target before any
// mutation is attempted.
func (u *AdminUsecase) UpdateUserRole(ctx context.Context, actorID, targetID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	if !role.Valid() {
		return nil, domainerrors.BadRequest(`Invalid role. Must be "broker" or "admin"`)
	}
	if actorID == targetID && role != entities.UserRoleAdmin {
		return nil, domainerrors.BadRequest("Cannot demote yourself from admin")
	}

	user, err := u.userRepo.UpdateRole(ctx, targetID, role)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

// ListCustomers lists customer profiles joined with their users
func (u *AdminUsecase) ListCustomers(ctx context.Context, limit, offset int) ([]*repositories.CustomerWithUser, error) {
	page := utils.GetPaginationParams(limit, offset, defaultListLimit)
	return u.customerRepo.List(ctx, page.Limit, page.Offset)
}

// GetCustomer returns one customer with its documents and the 20 most
// recent activities, regardless of ownership.
func (u *AdminUsecase) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerDetail, error) {
	customer, err := u.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer not found")
		}
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}

	documents, err := u.documentRepo.ListByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	activities, err := u.activityRepo.ListByCustomerID(ctx, customer.ID, 20)
	if err != nil {
		return nil, err
	}

	return &CustomerDetail{
		Customer:   customer,
		Email:      user.Email,
		Role:       user.Role,
		Documents:  documents,
		Activities: activities,
	}, nil
}
