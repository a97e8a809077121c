package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"customer-onboarding.backend/internal/domain/entities"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
	"customer-onboarding.backend/internal/domain/repositories"
)

// DocumentUsecase handles document upload, retrieval and deletion with
// owner-scoped access checks.
type DocumentUsecase struct {
	documentRepo repositories.DocumentRepository
	customerRepo repositories.CustomerRepository
	activityRepo repositories.ActivityRepository
	uow          repositories.UnitOfWork
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	documentRepo repositories.DocumentRepository,
	customerRepo repositories.CustomerRepository,
	activityRepo repositories.ActivityRepository,
	uow repositories.UnitOfWork,
) *DocumentUsecase {
	return &DocumentUsecase{
		documentRepo: documentRepo,
		customerRepo: customerRepo,
		activityRepo: activityRepo,
		uow:          uow,
	}
}

// Upload stores a document for the user's customer and appends a
// DOCUMENT_UPLOAD activity.
func (u *DocumentUsecase) Upload(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, name string, content []byte, mimeType string) (*entities.Document, error) {
	customer, err := u.requireCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}

	doc := &entities.Document{
		ID:                 uuid.New(),
		CustomerID:         customer.ID,
		DocumentType:       docType,
		DocumentName:       name,
		FileContent:        content,
		FileSize:           int64(len(content)),
		MimeType:           mimeType,
		VerificationStatus: entities.VerificationPending,
		UploadedAt:         time.Now(),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if txErr := u.documentRepo.Create(ctx, doc); txErr != nil {
			return txErr
		}
		return u.appendActivity(ctx, customer.ID, entities.ActivityDocumentUpload,
			fmt.Sprintf("Uploaded document: %s", docType))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// List lists the user's documents, metadata only, newest first
func (u *DocumentUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Document, error) {
	customer, err := u.requireCustomer(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.documentRepo.ListByCustomerID(ctx, customer.ID)
}

// Get returns document metadata after an ownership check
func (u *DocumentUsecase) Get(ctx context.Context, userID, docID uuid.UUID) (*entities.Document, error) {
	return u.authorizeDocument(ctx, userID, docID)
}

// Download returns document metadata together with the stored bytes
func (u *DocumentUsecase) Download(ctx context.Context, userID, docID uuid.UUID) (*entities.Document, []byte, error) {
	doc, err := u.authorizeDocument(ctx, userID, docID)
	if err != nil {
		return nil, nil, err
	}

	content, err := u.documentRepo.GetContent(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if len(content) == 0 {
		return nil, nil, domainerrors.NotFound("File content not found")
	}
	return doc, content, nil
}

// Delete removes a document after an ownership check. Row removal and the
// DOCUMENT_DELETE activity commit together.
func (u *DocumentUsecase) Delete(ctx context.Context, userID, docID uuid.UUID) error {
	doc, err := u.authorizeDocument(ctx, userID, docID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if txErr := u.documentRepo.Delete(ctx, docID); txErr != nil {
			return txErr
		}
		return u.appendActivity(ctx, doc.CustomerID, entities.ActivityDocumentDelete,
			fmt.Sprintf("Deleted document: %s", doc.DocumentType))
	})
}

// authorizeDocument fetches the document and enforces the uniform
// ownership policy: a missing row is 404, a row owned by another customer
// is 403, never the other way around.
func (u *DocumentUsecase) authorizeDocument(ctx context.Context, userID, docID uuid.UUID) (*entities.Document, error) {
	doc, err := u.documentRepo.GetByID(ctx, docID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Document not found")
		}
		return nil, err
	}

	customer, err := u.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("Access denied")
		}
		return nil, err
	}
	if doc.CustomerID != customer.ID {
		return nil, domainerrors.Forbidden("Access denied")
	}
	return doc, nil
}

func (u *DocumentUsecase) requireCustomer(ctx context.Context, userID uuid.UUID) (*entities.Customer, error) {
	customer, err := u.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Customer profile not found")
		}
		return nil, err
	}
	return customer, nil
}

func (u *DocumentUsecase) appendActivity(ctx context.Context, customerID uuid.UUID, activityType, description string) error {
	return u.activityRepo.Append(ctx, &entities.OnboardingActivity{
		ID:                  uuid.New(),
		CustomerID:          customerID,
		ActivityType:        activityType,
		ActivityDescription: description,
		CreatedAt:           time.Now(),
	})
}
