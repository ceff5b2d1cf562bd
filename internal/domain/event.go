package domain

import (
	"context"
	"fmt"
	"time"
)

// EventStatus is the publication lifecycle state of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
	EventCompleted EventStatus = "completed"
)

// ParseEventStatus validates a status string. Empty defaults to draft.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case EventDraft, EventPublished, EventCancelled, EventCompleted:
		return EventStatus(s), nil
	case "":
		return EventDraft, nil
	default:
		return "", fmt.Errorf("unknown event status %q", s)
	}
}

// TicketType distinguishes free and paid events.
type TicketType string

const (
	TicketFree TicketType = "free"
	TicketPaid TicketType = "paid"
)

// ParseTicketType validates a ticket type string. Empty defaults to free.
func ParseTicketType(s string) (TicketType, error) {
	switch TicketType(s) {
	case TicketFree, TicketPaid:
		return TicketType(s), nil
	case "":
		return TicketFree, nil
	default:
		return "", fmt.Errorf("unknown ticket type %q", s)
	}
}

// Event represents a schedulable happening attendants can register for.
// Capacity and RegistrationDeadline are optional; nil means unlimited spots
// and no cutoff respectively.
// swagger:model Event
type Event struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Venue                string      `json:"venue"`
	StartDate            time.Time   `json:"startDate"`
	EndDate              time.Time   `json:"endDate"`
	Capacity             *int        `json:"capacity"`
	RegistrationDeadline *time.Time  `json:"registrationDeadline"`
	Status               EventStatus `json:"status"`
	TicketType           TicketType  `json:"ticketType"`
	Price                float64     `json:"price"`
	OrganizerID          string      `json:"organizerId"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description, category, venue, organizerID string, startDate, endDate, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Category:    category,
		Venue:       venue,
		OrganizerID: organizerID,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      EventDraft,
		TicketType:  TicketFree,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventWithStats is an event together with its derived registration figures.
// AvailableSpots is nil when the event has no capacity limit.
// swagger:model EventWithStats
type EventWithStats struct {
	*Event
	RegisteredCount int  `json:"registeredCount"`
	AvailableSpots  *int `json:"availableSpots"`
}

// EventDetail is the full public view of a single event, including the
// organizer's display name.
// swagger:model EventDetail
type EventDetail struct {
	*Event
	OrganizerName   string `json:"organizerName"`
	RegisteredCount int    `json:"registeredCount"`
	AvailableSpots  *int   `json:"availableSpots"`
}

// EventFilter narrows the public event listing. Category "All" (or empty)
// matches every category; Search is a case-insensitive substring over title,
// description, and venue; StartDate and EndDate bound the event start date.
type EventFilter struct {
	Category  string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// EventUpdate carries the mutable event fields for an organizer update.
// Nil pointers leave the stored value unchanged. ClearCapacity and
// ClearDeadline reset the respective optional column to NULL.
type EventUpdate struct {
	Title                *string
	Description          *string
	Category             *string
	Venue                *string
	StartDate            *time.Time
	EndDate              *time.Time
	Capacity             *int
	ClearCapacity        bool
	RegistrationDeadline *time.Time
	ClearDeadline        bool
	Status               *EventStatus
	TicketType           *TicketType
	Price                *float64
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetDetail loads one published event with organizer name and registration figures.
	GetDetail(ctx context.Context, id string) (*EventDetail, error)
	// ListPublished returns published events matching the filter, ordered by
	// start date ascending, each with registration figures.
	ListPublished(ctx context.Context, filter EventFilter) ([]*EventWithStats, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*EventWithStats, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService is the public read side over events.
type CatalogService interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*EventWithStats, error)
	GetEvent(ctx context.Context, id string) (*EventDetail, error)
}

// EventService defines organizer-facing event management.
type EventService interface {
	CreateEvent(ctx context.Context, organizerID string, event *Event) error
	UpdateEvent(ctx context.Context, eventID, organizerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, organizerID string) error
	ListMyEvents(ctx context.Context, organizerID string) ([]*EventWithStats, error)
	ListEventRegistrations(ctx context.Context, eventID, organizerID string, p PaginationParams) ([]*Registration, int, error)
}
