package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventra/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	now              func() time.Time
}

// NewRegistrationService creates a RegistrationService backed by the given repository.
func NewRegistrationService(registrationRepo domain.RegistrationRepository) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		now:              time.Now,
	}
}

// Register runs the validation pipeline and commits the registration. Cheap
// local checks run first; the repository re-validates capacity, deadline, and
// uniqueness inside one transaction, so two racing submissions cannot both win
// the last seat or the same email.
func (s *registrationService) Register(ctx context.Context, input domain.RegistrationInput) (*domain.RegistrationConfirmation, error) {
	input.EventID = strings.TrimSpace(input.EventID)
	input.Email = strings.TrimSpace(input.Email)

	for _, field := range []string{
		input.EventID,
		strings.TrimSpace(input.FullName),
		input.Email,
		strings.TrimSpace(input.College),
		strings.TrimSpace(input.Department),
		strings.TrimSpace(input.PhoneNumber),
	} {
		if field == "" {
			return nil, domain.NewValidationError("missing required field")
		}
	}
	if !emailRegexp.MatchString(input.Email) {
		return nil, domain.NewValidationError("invalid email")
	}

	// Early duplicate check so the common case fails before touching the
	// event row. The unique index enforces this again at commit time.
	if _, err := s.registrationRepo.GetByEventAndEmail(ctx, input.EventID, input.Email); err == nil {
		return nil, domain.NewConflictError(domain.ConflictAlreadyRegistered, "already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	members := input.NumberOfMembers
	if members < 1 {
		members = 1
	}

	now := s.now()
	reg := &domain.Registration{
		EventID:         input.EventID,
		FullName:        strings.TrimSpace(input.FullName),
		Email:           input.Email,
		College:         strings.TrimSpace(input.College),
		Department:      strings.TrimSpace(input.Department),
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		TeamName:        strings.TrimSpace(input.TeamName),
		NumberOfMembers: members,
		AdditionalInfo:  strings.TrimSpace(input.AdditionalInfo),
		Status:          domain.RegistrationConfirmed,
		RegisteredAt:    now,
	}
	if err := s.registrationRepo.Register(ctx, reg, now); err != nil {
		var conflict *domain.ConflictError
		if errors.Is(err, domain.ErrNotFound) || errors.As(err, &conflict) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	return &domain.RegistrationConfirmation{
		RegistrationID: fmt.Sprintf("REG%s_%s", reg.EventID, reg.ID),
		Registration:   reg,
	}, nil
}

func (s *registrationService) CheckRegistration(ctx context.Context, eventID, email string) (*domain.RegistrationCheck, error) {
	eventID = strings.TrimSpace(eventID)
	email = strings.TrimSpace(email)
	if eventID == "" || email == "" {
		return nil, domain.NewValidationError("eventId and email are required")
	}

	reg, err := s.registrationRepo.GetByEventAndEmail(ctx, eventID, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.RegistrationCheck{IsRegistered: false}, nil
		}
		return nil, fmt.Errorf("check registration: %w", err)
	}

	return &domain.RegistrationCheck{
		IsRegistered: true,
		Registration: &domain.RegistrationRecord{
			ID:           reg.ID,
			FullName:     reg.FullName,
			Status:       reg.Status,
			RegisteredAt: reg.RegisteredAt,
		},
	}, nil
}
