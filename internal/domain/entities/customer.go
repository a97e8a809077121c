package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OnboardingStatus represents the onboarding state of a customer.
// Transition legality is not enforced at the data layer; callers may set
// any member of the set at any time.
type OnboardingStatus string

const (
	OnboardingPending    OnboardingStatus = "pending"
	OnboardingInProgress OnboardingStatus = "in_progress"
	OnboardingCompleted  OnboardingStatus = "completed"
	OnboardingRejected   OnboardingStatus = "rejected"
)

// Customer represents a customer profile, owned by exactly one user.
type Customer struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"user_id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	GSTIN            null.String      `json:"gstin"`
	Phone            null.String      `json:"phone"`
	DateOfBirth      null.Time        `json:"date_of_birth"`
	Address          null.String      `json:"address"`
	City             null.String      `json:"city"`
	State            null.String      `json:"state"`
	ZipCode          null.String      `json:"zip_code"`
	Country          null.String      `json:"country"`
	OnboardingStatus OnboardingStatus `json:"onboarding_status"`
	OnboardingStep   int              `json:"onboarding_step"`
	CreatedAt        time.Time        `json:"created_at"`
}

// UpdateCustomerInput is a typed partial update: only set fields are
// written, so a caller can change a single column without touching the rest.
type UpdateCustomerInput struct {
	FirstName   null.String `json:"first_name"`
	LastName    null.String `json:"last_name"`
	GSTIN       null.String `json:"gstin"`
	Phone       null.String `json:"phone"`
	DateOfBirth null.Time   `json:"date_of_birth"`
	Address     null.String `json:"address"`
	City        null.String `json:"city"`
	State       null.String `json:"state"`
	ZipCode     null.String `json:"zip_code"`
	Country     null.String `json:"country"`
}

// IsEmpty reports whether no field was provided
func (i UpdateCustomerInput) IsEmpty() bool {
	return !i.FirstName.Valid && !i.LastName.Valid && !i.GSTIN.Valid &&
		!i.Phone.Valid && !i.DateOfBirth.Valid && !i.Address.Valid &&
		!i.City.Valid && !i.State.Valid && !i.ZipCode.Valid && !i.Country.Valid
}

// TransitionInput carries an onboarding status/step change. Both fields
// are optional; step is caller-supplied and not checked for monotonicity.
type TransitionInput struct {
	Status *OnboardingStatus `json:"status" binding:"omitempty,oneof=pending in_progress completed rejected"`
	Step   *int              `json:"step" binding:"omitempty,min=1,max=10"`
}

// CustomerSummary is the compact customer shape returned by auth and
// status endpoints.
type CustomerSummary struct {
	ID               uuid.UUID        `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	OnboardingStatus OnboardingStatus `json:"onboarding_status"`
	OnboardingStep   int              `json:"onboarding_step"`
}

// Summary returns the compact shape of the customer
func (c *Customer) Summary() *CustomerSummary {
	return &CustomerSummary{
		ID:               c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		OnboardingStatus: c.OnboardingStatus,
		OnboardingStep:   c.OnboardingStep,
	}
}
