package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/usecases"
	"customer-onboarding.backend/pkg/crypto"
	"customer-onboarding.backend/pkg/jwt"
)

func newAuthUsecaseForTest(
	userRepo *MockUserRepository,
	customerRepo *MockCustomerRepository,
	activityRepo *MockActivityRepository,
) *usecases.AuthUsecase {
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute)
	return usecases.NewAuthUsecase(userRepo, customerRepo, activityRepo, jwtSvc)
}

func TestAuthUsecase_Register_EmailAlreadyExists(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(userRepo, new(MockCustomerRepository), new(MockActivityRepository))

	userRepo.On("GetByEmail", context.Background(), "exists@mail.com").Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email:     "exists@mail.com",
		Password:  "Password123!",
		FirstName: "Asha",
		LastName:  "Rao",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	var appErr *domainerrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Email already registered", appErr.Message)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	activityRepo := new(MockActivityRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, activityRepo)

	input := &entities.RegisterInput{
		Email:     "new@mail.com",
		Password:  "Password123!",
		FirstName: "Asha",
		LastName:  "Rao",
		Phone:     "+91-9876543210",
		GSTIN:     "27AAPFU0939F1ZV",
	}

	userRepo.On("GetByEmail", context.Background(), input.Email).Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.User")).Return(nil).Once()
	customerRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Customer")).Return(nil).Once()
	activityRepo.On("Append", context.Background(), mock.MatchedBy(func(a *entities.OnboardingActivity) bool {
		return a.ActivityType == entities.ActivityRegistration
	})).Return(nil).Once()

	resp, err := uc.Register(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, input.Email, resp.User.Email)
	assert.Equal(t, entities.UserRoleBroker, resp.User.Role)
	assert.Equal(t, entities.OnboardingPending, resp.Customer.OnboardingStatus)
	assert.Equal(t, 1, resp.Customer.OnboardingStep)
	assert.Equal(t, "27AAPFU0939F1ZV", resp.Customer.GSTIN.String)

	// The issued token carries the customer identity.
	claims, err := jwt.NewJWTService("test-secret", 15*time.Minute).ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.NotNil(t, claims.CustomerID)
	assert.Equal(t, resp.Customer.ID, *claims.CustomerID)

	userRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
	activityRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_CompensatingDelete(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, new(MockActivityRepository))

	conflict := domainerrors.Conflict("GSTIN number already registered by another customer")
	var createdUserID uuid.UUID

	userRepo.On("GetByEmail", context.Background(), "dup-gstin@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.User")).Return(nil).Run(func(args mock.Arguments) {
		createdUserID = args.Get(1).(*entities.User).ID
	}).Once()
	customerRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Customer")).Return(conflict).Once()
	userRepo.On("Delete", context.Background(), mock.MatchedBy(func(id uuid.UUID) bool {
		return id == createdUserID
	})).Return(nil).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email:     "dup-gstin@mail.com",
		Password:  "Password123!",
		FirstName: "Asha",
		LastName:  "Rao",
		GSTIN:     "27AAPFU0939F1ZV",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	userRepo.AssertExpectations(t)
	customerRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_CompensatingDeleteFails(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, new(MockActivityRepository))

	deleteErr := errors.New("delete failed")

	userRepo.On("GetByEmail", context.Background(), "x@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.User")).Return(nil).Once()
	customerRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Customer")).Return(errors.New("insert failed")).Once()
	userRepo.On("Delete", context.Background(), mock.AnythingOfType("uuid.UUID")).Return(deleteErr).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email:     "x@mail.com",
		Password:  "Password123!",
		FirstName: "Asha",
		LastName:  "Rao",
	})
	assert.ErrorIs(t, err, deleteErr)
}

func TestAuthUsecase_Login_InvalidCredentialCases(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(userRepo, new(MockCustomerRepository), new(MockActivityRepository))

	userRepo.On("GetByEmail", context.Background(), "missing@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "missing@mail.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	hashed, _ := crypto.HashPassword("correct-password")
	userRepo.On("GetByEmail", context.Background(), "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleBroker,
	}, nil).Once()
	_, err = uc.Login(context.Background(), &entities.LoginInput{
		Email:    "user@mail.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthUsecase_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	activityRepo := new(MockActivityRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, activityRepo)

	hashed, _ := crypto.HashPassword("correct-password")
	userID := uuid.New()
	customerID := uuid.New()

	userRepo.On("GetByEmail", context.Background(), "broker@mail.com").Return(&entities.User{
		ID:           userID,
		Email:        "broker@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleBroker,
	}, nil).Once()
	customerRepo.On("GetByUserID", context.Background(), userID).Return(&entities.Customer{
		ID:               customerID,
		UserID:           userID,
		FirstName:        "Asha",
		LastName:         "Rao",
		OnboardingStatus: entities.OnboardingInProgress,
		OnboardingStep:   3,
	}, nil).Once()
	activityRepo.On("Append", context.Background(), mock.MatchedBy(func(a *entities.OnboardingActivity) bool {
		return a.ActivityType == entities.ActivityLogin && a.CustomerID == customerID
	})).Return(nil).Once()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "broker@mail.com",
		Password: "correct-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, customerID, resp.Customer.ID)
	activityRepo.AssertExpectations(t)
}

func TestAuthUsecase_Login_NoCustomerProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	activityRepo := new(MockActivityRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, activityRepo)

	hashed, _ := crypto.HashPassword("correct-password")
	userID := uuid.New()

	userRepo.On("GetByEmail", context.Background(), "admin@mail.com").Return(&entities.User{
		ID:           userID,
		Email:        "admin@mail.com",
		PasswordHash: hashed,
		Role:         entities.UserRoleAdmin,
	}, nil).Once()
	customerRepo.On("GetByUserID", context.Background(), userID).Return(nil, domainerrors.ErrNotFound).Once()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "admin@mail.com",
		Password: "correct-password",
	})
	assert.NoError(t, err)
	assert.Nil(t, resp.Customer)

	// No customer, no LOGIN activity.
	activityRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)

	claims, err := jwt.NewJWTService("test-secret", 15*time.Minute).ValidateToken(resp.Token)
	assert.NoError(t, err)
	assert.Nil(t, claims.CustomerID)
}

func TestAuthUsecase_GetProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	customerRepo := new(MockCustomerRepository)
	uc := newAuthUsecaseForTest(userRepo, customerRepo, new(MockActivityRepository))

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:    userID,
		Email: "broker@mail.com",
		Role:  entities.UserRoleBroker,
	}, nil).Once()
	customerRepo.On("GetByUserID", context.Background(), userID).Return(nil, domainerrors.ErrNotFound).Once()

	user, customer, err := uc.GetProfile(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Nil(t, customer)

	missing := uuid.New()
	userRepo.On("GetByID", context.Background(), missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, _, err = uc.GetProfile(context.Background(), missing)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
