package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex:customers_user_id_key;not null"`
	FirstName        string    `gorm:"type:varchar(100);not null"`
	LastName         string    `gorm:"type:varchar(100);not null"`
	GSTIN            *string   `gorm:"type:varchar(15);uniqueIndex:customers_gstin_key"`
	Phone            *string   `gorm:"type:varchar(20)"`
	DateOfBirth      *time.Time
	Address          *string `gorm:"type:varchar(255)"`
	City             *string `gorm:"type:varchar(100)"`
	State            *string `gorm:"type:varchar(100)"`
	ZipCode          *string `gorm:"type:varchar(20)"`
	Country          *string `gorm:"type:varchar(100)"`
	OnboardingStatus string  `gorm:"type:varchar(20);not null;default:'pending'"`
	OnboardingStep   int     `gorm:"not null;default:1"`
	CreatedAt        time.Time
}
