package repositories

import (
	"context"

	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
)

// ActivityRepository defines the append-only onboarding audit trail.
// There is deliberately no update or delete.
type ActivityRepository interface {
	Append(ctx context.Context, activity *entities.OnboardingActivity) error
	// ListByCustomerID returns activities ordered most-recent-first,
	// truncated to limit.
	ListByCustomerID(ctx context.Context, customerID uuid.UUID, limit int) ([]*entities.OnboardingActivity, error)
	Count(ctx context.Context) (int64, error)
}
