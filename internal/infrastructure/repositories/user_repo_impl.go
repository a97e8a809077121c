package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	domainRepos "customer-onboarding.backend/internal/domain/repositories"
	"customer-onboarding.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok && strings.Contains(constraint, "email") {
			return domainerrors.Conflict("Email already registered")
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// UpdateRole sets the user's role and returns the updated row.
// Last-writer-wins; no optimistic concurrency token.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) (*entities.User, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"role":       string(role),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete hard-deletes a user row
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

type userCustomerRow struct {
	models.User
	CustomerID *uuid.UUID
	FirstName  *string
	LastName   *string
	GSTIN      *string
}

// List lists users newest first with their linked customer, optionally
// filtered by role.
func (r *UserRepository) List(ctx context.Context, role *entities.UserRole, limit, offset int) ([]*domainRepos.UserWithCustomer, error) {
	var rows []userCustomerRow

	query := GetDB(ctx, r.db).WithContext(ctx).
		Table("users").
		Select("users.*, customers.id AS customer_id, customers.first_name, customers.last_name, customers.gstin").
		Joins("LEFT JOIN customers ON customers.user_id = users.id").
		Order("users.created_at DESC")

	if role != nil {
		query = query.Where("users.role = ?", string(*role))
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domainRepos.UserWithCustomer, 0, len(rows))
	for _, row := range rows {
		m := row.User
		out = append(out, &domainRepos.UserWithCustomer{
			User:       userToEntity(&m),
			CustomerID: row.CustomerID,
			FirstName:  null.StringFromPtr(row.FirstName),
			LastName:   null.StringFromPtr(row.LastName),
			GSTIN:      null.StringFromPtr(row.GSTIN),
		})
	}
	return out, nil
}

// CountByRole counts users holding the given role
func (r *UserRepository) CountByRole(ctx context.Context, role entities.UserRole) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(role)).
		Count(&count).Error
	return count, err
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
