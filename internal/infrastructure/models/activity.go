package models

import (
	"time"

	"github.com/google/uuid"
)

type OnboardingActivity struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID `gorm:"type:uuid;index;not null"`
	ActivityType        string    `gorm:"type:varchar(50);not null"`
	ActivityDescription string    `gorm:"type:text;not null"`
	CreatedAt           time.Time
}

// TableName keeps the original table name instead of GORM's default
// pluralization of the struct name.
func (OnboardingActivity) TableName() string {
	return "onboarding_activities"
}
