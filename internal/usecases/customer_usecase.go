package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/domain/repositories"
)

const defaultActivityLimit = 50

// CustomerUsecase handles customer profile and onboarding-state logic
type CustomerUsecase struct {
	customerRepo repositories.CustomerRepository
	activityRepo repositories.ActivityRepository
	uow          repositories.UnitOfWork
}

// NewCustomerUsecase creates a new customer usecase
func NewCustomerUsecase(
	customerRepo repositories.CustomerRepository,
	activityRepo repositories.ActivityRepository,
	uow repositories.UnitOfWork,
) *CustomerUsecase {
	return &CustomerUsecase{
		customerRepo: customerRepo,
		activityRepo: activityRepo,
		uow:          uow,
	}
}

// GetProfile returns the customer profile owned by the user
func (u *CustomerUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer profile not found")
		}
		return nil, err
	}
	return customer, nil
}

// UpdateProfile applies a typed partial update to the profile and appends
// a PROFILE_UPDATE activity.
func (u *CustomerUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error) {
	customer, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var updated *entities.Customer
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = u.customerRepo.Update(ctx, customer.ID, input)
		if txErr != nil {
			return txErr
		}
		return u.RecordActivity(ctx, customer.ID, entities.ActivityProfileUpdate, "Customer updated profile information")
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetStatus returns the onboarding status, step and the 10 most recent
// activities.
func (u *CustomerUsecase) GetStatus(ctx context.Context, userID uuid.UUID) (*entities.Customer, []*entities.OnboardingActivity, error) {
	customer, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	activities, err := u.activityRepo.ListByCustomerID(ctx, customer.ID, 10)
	if err != nil {
		return nil, nil, err
	}
	return customer, activities, nil
}

// Transition moves the onboarding state machine. Unset fields keep their
// current value; transition legality and step monotonicity are not
// enforced. The update and its STEP_COMPLETED activity commit together.
func (u *CustomerUsecase) Transition(ctx context.Context, userID uuid.UUID, input *entities.TransitionInput) (*entities.Customer, error) {
	customer, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	status := customer.OnboardingStatus
	if input.Status != nil {
		status = *input.Status
	}
	step := customer.OnboardingStep
	if input.Step != nil {
		step = *input.Step
	}

	var updated *entities.Customer
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		var txErr error
		updated, txErr = u.customerRepo.UpdateOnboarding(ctx, customer.ID, status, step)
		if txErr != nil {
			return txErr
		}
		description := fmt.Sprintf("Onboarding step %d completed. Status: %s", step, status)
		return u.RecordActivity(ctx, customer.ID, entities.ActivityStepCompleted, description)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListActivities returns the activity log, most recent first
func (u *CustomerUsecase) ListActivities(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.OnboardingActivity, error) {
	customer, err := u.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return u.activityRepo.ListByCustomerID(ctx, customer.ID, limit)
}

// RecordActivity appends one record to the audit trail
func (u *CustomerUsecase) RecordActivity(ctx context.Context, customerID uuid.UUID, activityType, description string) error {
	return u.activityRepo.Append(ctx, &entities.OnboardingActivity{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		ActivityType:        activityType,
		ActivityDescription: description,
		CreatedAt:           time.Now(),
	})
}
