package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle state of a registration. Current flows
// only ever produce "confirmed"; "cancelled" exists so a future cancellation
// path slots in without a schema change.
type RegistrationStatus string

const (
	RegistrationConfirmed RegistrationStatus = "confirmed"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration represents one attendant's claim on one seat of one event.
// Registrations are identified by (eventId, email) and do not require a
// platform account; contact details are captured inline.
// swagger:model Registration
type Registration struct {
	ID              string             `json:"id"`
	EventID         string             `json:"eventId"`
	FullName        string             `json:"fullName"`
	Email           string             `json:"email"`
	College         string             `json:"college"`
	Department      string             `json:"department"`
	PhoneNumber     string             `json:"phoneNumber"`
	TeamName        string             `json:"teamName,omitempty"`
	NumberOfMembers int                `json:"numberOfMembers"`
	AdditionalInfo  string             `json:"additionalInfo,omitempty"`
	Status          RegistrationStatus `json:"status"`
	RegisteredAt    time.Time          `json:"registeredAt"`
}

// RegistrationInput is a registration submission before validation.
type RegistrationInput struct {
	EventID         string
	FullName        string
	Email           string
	College         string
	Department      string
	PhoneNumber     string
	TeamName        string
	NumberOfMembers int
	AdditionalInfo  string
}

// RegistrationConfirmation is the outcome of a successful registration.
// RegistrationID is a human-readable display identifier derived from the
// event and record identities; it is not stored.
type RegistrationConfirmation struct {
	RegistrationID string        `json:"registrationId"`
	Registration   *Registration `json:"registration"`
}

// RegistrationCheck answers whether an email already holds a seat for an event.
type RegistrationCheck struct {
	IsRegistered bool                `json:"isRegistered"`
	Registration *RegistrationRecord `json:"registration,omitempty"`
}

// RegistrationRecord is the subset of a registration exposed by the
// check-registration lookup.
type RegistrationRecord struct {
	ID           string             `json:"id"`
	FullName     string             `json:"fullName"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registeredAt"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Register inserts the registration inside a single transaction that locks
	// the event row, recomputes the non-cancelled count, and re-validates
	// capacity and deadline against now. It returns ErrNotFound when the event
	// does not exist and ConflictError for a duplicate, a full event, or a
	// passed deadline. On success reg.ID, reg.Status, and reg.RegisteredAt are
	// populated.
	Register(ctx context.Context, reg *Registration, now time.Time) error
	// GetByEventAndEmail returns the non-cancelled registration for the pair,
	// or ErrNotFound. Email matching is case-insensitive.
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Registration, error)
	// ListByEventID returns one page of non-cancelled registrations for the
	// event, newest first, along with the total count.
	ListByEventID(ctx context.Context, eventID string, p PaginationParams) ([]*Registration, int, error)
}

// RegistrationService validates and commits registrations, and answers the
// pre-submit duplicate lookup used by registration forms.
type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*RegistrationConfirmation, error)
	CheckRegistration(ctx context.Context, eventID, email string) (*RegistrationCheck, error)
}
