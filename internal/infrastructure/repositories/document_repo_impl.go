package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/infrastructure/models"
)

// DocumentRepository implements document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create stores a new document, content included
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	m := &models.Document{
		ID:                 doc.ID,
		CustomerID:         doc.CustomerID,
		DocumentType:       string(doc.DocumentType),
		DocumentName:       doc.DocumentName,
		FileContent:        doc.FileContent,
		FileSize:           doc.FileSize,
		MimeType:           doc.MimeType,
		VerificationStatus: string(doc.VerificationStatus),
		UploadedAt:         doc.UploadedAt,
		VerifiedAt:         doc.VerifiedAt.Ptr(),
		Notes:              doc.Notes.Ptr(),
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets document metadata by ID. The file content column is not
// selected; use GetContent for the bytes.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	err := GetDB(ctx, r.db).WithContext(ctx).
		Omit("file_content").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return documentToEntity(&m), nil
}

// GetContent fetches the raw bytes of a document
func (r *DocumentRepository) GetContent(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var m models.Document
	err := GetDB(ctx, r.db).WithContext(ctx).
		Select("id", "file_content").
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return m.FileContent, nil
}

// ListByCustomerID lists a customer's documents newest first, metadata only
func (r *DocumentRepository) ListByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entities.Document, error) {
	var docModels []models.Document
	err := GetDB(ctx, r.db).WithContext(ctx).
		Omit("file_content").
		Where("customer_id = ?", customerID).
		Order("uploaded_at DESC").
		Find(&docModels).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Document, 0, len(docModels))
	for _, m := range docModels {
		model := m
		out = append(out, documentToEntity(&model))
	}
	return out, nil
}

// Delete removes a document row
func (r *DocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Count counts document rows
func (r *DocumentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Document{}).Count(&count).Error
	return count, err
}

func documentToEntity(m *models.Document) *entities.Document {
	return &entities.Document{
		ID:                 m.ID,
		CustomerID:         m.CustomerID,
		DocumentType:       entities.DocumentType(m.DocumentType),
		DocumentName:       m.DocumentName,
		FileContent:        m.FileContent,
		FileSize:           m.FileSize,
		MimeType:           m.MimeType,
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		UploadedAt:         m.UploadedAt,
		VerifiedAt:         null.TimeFromPtr(m.VerifiedAt),
		Notes:              null.StringFromPtr(m.Notes),
	}
}
