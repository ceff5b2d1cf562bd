package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventra/internal/domain"
)

type eventService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	contextTimeout   time.Duration
}

// NewEventService creates the organizer-facing event management service.
func NewEventService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		contextTimeout:   timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID string, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, organizerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrForbidden
		}
		return fmt.Errorf("get organizer: %w", err)
	}
	if !user.Role.CanManageEvents() {
		return domain.ErrForbidden
	}

	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return domain.NewValidationError("title is required")
	}
	if event.StartDate.IsZero() || event.EndDate.IsZero() {
		return domain.NewValidationError("startDate and endDate are required")
	}
	if event.StartDate.After(event.EndDate) {
		return domain.NewValidationError("startDate must not be after endDate")
	}
	if event.Capacity != nil && *event.Capacity < 1 {
		return domain.NewValidationError("capacity must be at least 1")
	}
	status, err := domain.ParseEventStatus(string(event.Status))
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	event.Status = status
	ticketType, err := domain.ParseTicketType(string(event.TicketType))
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	event.TicketType = ticketType

	event.OrganizerID = organizerID
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, organizerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, domain.ErrForbidden
	}

	// Validate the time window as it would be after the update.
	start := event.StartDate
	if upd.StartDate != nil {
		start = *upd.StartDate
	}
	end := event.EndDate
	if upd.EndDate != nil {
		end = *upd.EndDate
	}
	if start.After(end) {
		return nil, domain.NewValidationError("startDate must not be after endDate")
	}
	if upd.Capacity != nil && *upd.Capacity < 1 {
		return nil, domain.NewValidationError("capacity must be at least 1")
	}
	if upd.Status != nil {
		if _, err := domain.ParseEventStatus(string(*upd.Status)); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}
	if upd.TicketType != nil {
		if _, err := domain.ParseTicketType(string(*upd.TicketType)); err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, organizerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ListMyEvents(ctx context.Context, organizerID string) ([]*domain.EventWithStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithStats{}
	}
	return events, nil
}

func (s *eventService) ListEventRegistrations(ctx context.Context, eventID, organizerID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if event.OrganizerID != organizerID {
		return nil, 0, domain.ErrForbidden
	}

	regs, total, err := s.registrationRepo.ListByEventID(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, total, nil
}
