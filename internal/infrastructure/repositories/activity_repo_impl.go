package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"customer-onboarding.backend/internal/domain/entities"
	"customer-onboarding.backend/internal/infrastructure/models"
)

// ActivityRepository implements the append-only onboarding audit trail
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append inserts one activity record
func (r *ActivityRepository) Append(ctx context.Context, activity *entities.OnboardingActivity) error {
	m := &models.OnboardingActivity{
		ID:                  activity.ID,
		CustomerID:          activity.CustomerID,
		ActivityType:        activity.ActivityType,
		ActivityDescription: activity.ActivityDescription,
		CreatedAt:           activity.CreatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByCustomerID returns activities ordered most-recent-first, truncated
// to limit when positive.
func (r *ActivityRepository) ListByCustomerID(ctx context.Context, customerID uuid.UUID, limit int) ([]*entities.OnboardingActivity, error) {
	var activityModels []models.OnboardingActivity

	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.OnboardingActivity, 0, len(activityModels))
	for _, m := range activityModels {
		out = append(out, &entities.OnboardingActivity{
			ID:                  m.ID,
			CustomerID:          m.CustomerID,
			ActivityType:        m.ActivityType,
			ActivityDescription: m.ActivityDescription,
			CreatedAt:           m.CreatedAt,
		})
	}
	return out, nil
}

// Count counts activity rows
func (r *ActivityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.OnboardingActivity{}).Count(&count).Error
	return count, err
}
