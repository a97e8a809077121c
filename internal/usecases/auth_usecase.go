package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/domain/repositories"
	"customer-onboarding.backend/pkg/crypto"
	"customer-onboarding.backend/pkg/jwt"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	customerRepo repositories.CustomerRepository
	activityRepo repositories.ActivityRepository
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	customerRepo repositories.CustomerRepository,
	activityRepo repositories.ActivityRepository,
	jwtService *jwt.JWTService,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		activityRepo: activityRepo,
		jwtService:   jwtService,
	}
}

// Register creates a user and its customer profile. User and customer are
// created as one logical transaction: if the profile insert fails after the
// user row was written, the user is removed again (compensating delete) so
// a failed registration leaves no orphaned account.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("Email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleBroker,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	customer := &entities.Customer{
		ID:               uuid.New(),
		UserID:           user.ID,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Phone:            null.NewString(input.Phone, input.Phone != ""),
		GSTIN:            null.NewString(input.GSTIN, input.GSTIN != ""),
		OnboardingStatus: entities.OnboardingPending,
		OnboardingStep:   1,
		CreatedAt:        now,
	}
	if err := u.customerRepo.Create(ctx, customer); err != nil {
		if delErr := u.userRepo.Delete(ctx, user.ID); delErr != nil {
			return nil, delErr
		}
		return nil, err
	}

	if err := u.appendActivity(ctx, customer.ID, entities.ActivityRegistration, "Customer registered successfully"); err != nil {
		return nil, err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), &customer.ID)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		Token:    token,
		User:     user,
		Customer: customer,
	}, nil
}

// Login authenticates a user and returns a session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	customer, err := u.customerRepo.GetByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	var customerID *uuid.UUID
	if customer != nil {
		customerID = &customer.ID
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email, string(user.Role), customerID)
	if err != nil {
		return nil, err
	}

	if customer != nil {
		if err := u.appendActivity(ctx, customer.ID, entities.ActivityLogin, "Customer logged in"); err != nil {
			return nil, err
		}
	}

	return &entities.AuthResponse{
		Token:    token,
		User:     user,
		Customer: customer,
	}, nil
}

// GetProfile returns the user row and its customer profile, if any
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, *entities.Customer, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("User not found")
		}
		return nil, nil, err
	}

	customer, err := u.customerRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, nil, err
	}

	return user, customer, nil
}

func (u *AuthUsecase) appendActivity(ctx context.Context, customerID uuid.UUID, activityType, description string) error {
	return u.activityRepo.Append(ctx, &entities.OnboardingActivity{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		ActivityType:        activityType,
		ActivityDescription: description,
		CreatedAt:           time.Now(),
	})
}
