package entities

import (
	"time"

	"github.com/google/uuid"
)

// Activity type tags appended by the onboarding flow.
const (
	ActivityRegistration   = "REGISTRATION"
	ActivityLogin          = "LOGIN"
	ActivityProfileUpdate  = "PROFILE_UPDATE"
	ActivityDocumentUpload = "DOCUMENT_UPLOAD"
	ActivityDocumentDelete = "DOCUMENT_DELETE"
	ActivityStepCompleted  = "STEP_COMPLETED"
)

// OnboardingActivity is one record of the append-only audit trail.
// Activities are never updated or deleted.
type OnboardingActivity struct {
	ID                  uuid.UUID `json:"id"`
	CustomerID          uuid.UUID `json:"customer_id"`
	ActivityType        string    `json:"activity_type"`
	ActivityDescription string    `json:"activity_description"`
	CreatedAt           time.Time `json:"created_at"`
}
