package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	domainRepos "customer-onboarding.backend/internal/domain/repositories"
	"customer-onboarding.backend/internal/infrastructure/models"
)

// CustomerRepository implements customer profile data operations
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create creates a new customer profile
func (r *CustomerRepository) Create(ctx context.Context, customer *entities.Customer) error {
	m := customerToModel(customer)

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return translateCustomerConflict(err)
	}
	return nil
}

// GetByID gets a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

// GetByUserID gets the customer owned by a user
func (r *CustomerRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Customer, error) {
	var m models.Customer
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return customerToEntity(&m), nil
}

// Update applies the set fields of the partial input and returns the
// updated row.
func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateCustomerInput) (*entities.Customer, error) {
	updates := map[string]interface{}{}
	if input.FirstName.Valid {
		updates["first_name"] = input.FirstName.String
	}
	if input.LastName.Valid {
		updates["last_name"] = input.LastName.String
	}
	if input.GSTIN.Valid {
		updates["gstin"] = input.GSTIN.String
	}
	if input.Phone.Valid {
		updates["phone"] = input.Phone.String
	}
	if input.DateOfBirth.Valid {
		updates["date_of_birth"] = input.DateOfBirth.Time
	}
	if input.Address.Valid {
		updates["address"] = input.Address.String
	}
	if input.City.Valid {
		updates["city"] = input.City.String
	}
	if input.State.Valid {
		updates["state"] = input.State.String
	}
	if input.ZipCode.Valid {
		updates["zip_code"] = input.ZipCode.String
	}
	if input.Country.Valid {
		updates["country"] = input.Country.String
	}

	if len(updates) == 0 {
		return nil, domainerrors.BadRequest("No fields to update")
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, translateCustomerConflict(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// UpdateOnboarding sets onboarding status and step and returns the updated
// row. Transition legality is deliberately not checked here.
func (r *CustomerRepository) UpdateOnboarding(ctx context.Context, id uuid.UUID, status entities.OnboardingStatus, step int) (*entities.Customer, error) {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"onboarding_status": string(status),
			"onboarding_step":   step,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

type customerUserRow struct {
	models.Customer
	Email string
	Role  string
}

// List lists customers newest first joined with their owning user
func (r *CustomerRepository) List(ctx context.Context, limit, offset int) ([]*domainRepos.CustomerWithUser, error) {
	var rows []customerUserRow

	query := GetDB(ctx, r.db).WithContext(ctx).
		Table("customers").
		Select("customers.*, users.email, users.role").
		Joins("JOIN users ON users.id = customers.user_id").
		Order("customers.created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*domainRepos.CustomerWithUser, 0, len(rows))
	for _, row := range rows {
		m := row.Customer
		out = append(out, &domainRepos.CustomerWithUser{
			Customer: customerToEntity(&m),
			Email:    row.Email,
			Role:     entities.UserRole(row.Role),
		})
	}
	return out, nil
}

// Count counts customer profiles
func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Customer{}).Count(&count).Error
	return count, err
}

func translateCustomerConflict(err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}
	switch {
	case strings.Contains(constraint, "gstin"):
		return domainerrors.Conflict("GSTIN number already registered by another customer")
	case strings.Contains(constraint, "user_id"):
		return domainerrors.Conflict("Customer profile already exists for this user")
	default:
		return domainerrors.Conflict("Duplicate value violates a unique constraint")
	}
}

func customerToModel(c *entities.Customer) *models.Customer {
	return &models.Customer{
		ID:               c.ID,
		UserID:           c.UserID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		GSTIN:            c.GSTIN.Ptr(),
		Phone:            c.Phone.Ptr(),
		DateOfBirth:      c.DateOfBirth.Ptr(),
		Address:          c.Address.Ptr(),
		City:             c.City.Ptr(),
		State:            c.State.Ptr(),
		ZipCode:          c.ZipCode.Ptr(),
		Country:          c.Country.Ptr(),
		OnboardingStatus: string(c.OnboardingStatus),
		OnboardingStep:   c.OnboardingStep,
		CreatedAt:        c.CreatedAt,
	}
}

func customerToEntity(m *models.Customer) *entities.Customer {
	return &entities.Customer{
		ID:               m.ID,
		UserID:           m.UserID,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		GSTIN:            null.StringFromPtr(m.GSTIN),
		Phone:            null.StringFromPtr(m.Phone),
		DateOfBirth:      null.TimeFromPtr(m.DateOfBirth),
		Address:          null.StringFromPtr(m.Address),
		City:             null.StringFromPtr(m.City),
		State:            null.StringFromPtr(m.State),
		ZipCode:          null.StringFromPtr(m.ZipCode),
		Country:          null.StringFromPtr(m.Country),
		OnboardingStatus: entities.OnboardingStatus(m.OnboardingStatus),
		OnboardingStep:   m.OnboardingStep,
		CreatedAt:        m.CreatedAt,
	}
}
