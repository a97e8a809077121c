package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID         uuid.UUID `gorm:"type:uuid;index;not null"`
	DocumentType       string    `gorm:"type:varchar(50);not null"`
	DocumentName       string    `gorm:"type:varchar(255);not null"`
	FileContent        []byte    `gorm:"type:bytea"`
	FileSize           int64     `gorm:"not null"`
	MimeType           string    `gorm:"type:varchar(100);not null"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'pending'"`
	UploadedAt         time.Time
	VerifiedAt         *time.Time
	Notes              *string `gorm:"type:text"`
}
