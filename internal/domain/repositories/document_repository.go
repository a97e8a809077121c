package repositories

import (
	"context"

	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
)

// DocumentRepository defines document data operations. GetByID and
// ListByCustomerID return metadata only; GetContent fetches the bytes.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	GetContent(ctx context.Context, id uuid.UUID) ([]byte, error)
	ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
