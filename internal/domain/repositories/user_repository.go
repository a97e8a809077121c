package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"customer-onboarding.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) (*entities.User, error)
	// Delete removes the user row. Used only as the compensating delete
	// when customer-profile creation fails after the user was created.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, role *entities.UserRole, limit, offset int) ([]*UserWithCustomer, error)
	CountByRole(ctx context.Context, role entities.UserRole) (int64, error)
}

// UserWithCustomer is a user row joined with its optional customer profile,
// the shape the admin user listing returns.
type UserWithCustomer struct {
	User       *entities.User `json:"user"`
	CustomerID *uuid.UUID     `json:"customer_id"`
	FirstName  null.String    `json:"first_name"`
	LastName   null.String    `json:"last_name"`
	GSTIN      null.String    `json:"gstin"`
}
