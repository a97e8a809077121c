package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType classifies an uploaded document
type DocumentType string

const (
	DocumentTypeIDProof      DocumentType = "id_proof"
	DocumentTypeAddressProof DocumentType = "address_proof"
	DocumentTypeIncomeProof  DocumentType = "income_proof"
	DocumentTypePhoto        DocumentType = "photo"
	DocumentTypeOther        DocumentType = "other"
)

// VerificationStatus represents document verification state
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Document represents an uploaded document owned by exactly one customer.
// FileContent holds the raw bytes; list endpoints return the metadata only.
type Document struct {
	ID                 uuid.UUID          `json:"id"`
	CustomerID         uuid.UUID          `json:"customer_id"`
	DocumentType       DocumentType       `json:"document_type"`
	DocumentName       string             `json:"document_name"`
	FileContent        []byte             `json:"-"`
	FileSize           int64              `json:"file_size"`
	MimeType           string             `json:"mime_type"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	UploadedAt         time.Time          `json:"uploaded_at"`
	VerifiedAt         null.Time          `json:"verified_at"`
	Notes              null.String        `json:"notes"`
}

// UploadDocumentInput carries the multipart form fields of an upload
type UploadDocumentInput struct {
	DocumentType DocumentType `form:"document_type" binding:"required,oneof=id_proof address_proof income_proof photo other"`
}
