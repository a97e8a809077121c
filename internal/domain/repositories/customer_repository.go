package repositories

import (
	"context"

	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
)

// CustomerRepository defines customer profile data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entities.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Customer, error)
	// Update applies the set fields of the partial input and returns the
	// updated row.
	Update(ctx context.Context, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error)
	UpdateOnboarding(ctx context.Context, id uuid.UUID, status entities.OnboardingStatus, step int) (*entities.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*CustomerWithUser, error)
	Count(ctx context.Context) (int64, error)
}

// CustomerWithUser is a customer row joined with its owning user
type CustomerWithUser struct {
	Customer *entities.Customer
	Email    string
	Role     entities.UserRole
}
