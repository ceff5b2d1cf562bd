package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventra/internal/delivery/http/helpers"
	"eventra/internal/delivery/http/middleware"
	"eventra/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /organizer/events.
type CreateEventRequest struct {
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Category             string     `json:"category"`
	Venue                string     `json:"venue"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              time.Time  `json:"endDate"`
	Capacity             *int       `json:"capacity,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Status               string     `json:"status,omitempty"`
	TicketType           string     `json:"ticketType,omitempty"`
	Price                float64    `json:"price,omitempty"`
}

func (r *CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, "title is required")
	}
	if r.StartDate.IsZero() {
		errs = append(errs, "startDate is required")
	}
	if r.EndDate.IsZero() {
		errs = append(errs, "endDate is required")
	}
	return errs
}

// EventSuccessResponse wraps a single event.
type EventSuccessResponse struct {
	Success bool          `json:"success"`
	Event   *domain.Event `json:"event"`
}

// ListMyEventsSuccessResponse is the success response for GET /organizer/events (200).
type ListMyEventsSuccessResponse struct {
	Success bool                     `json:"success"`
	Data    []*domain.EventWithStats `json:"data"`
	Count   int                      `json:"count"`
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the authenticated organizer. Status defaults to draft and ticket type to free.
// @Tags organizer
// @Accept json
// @Produce json
// @Param body body CreateEventRequest true "Event details"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "role may not manage events"
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /organizer/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	status, err := domain.ParseEventStatus(req.Status)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	ticketType, err := domain.ParseTicketType(req.TicketType)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	event := &domain.Event{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Venue:                req.Venue,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Capacity:             req.Capacity,
		RegistrationDeadline: req.RegistrationDeadline,
		Status:               status,
		TicketType:           ticketType,
		Price:                req.Price,
	}

	if err := c.Service.CreateEvent(r.Context(), organizerID, event); err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, EventSuccessResponse{Success: true, Event: event})
}

// UpdateEventRequest is the request body for PUT /organizer/events/{eventID}.
// Omitted fields are left unchanged; clearCapacity and clearDeadline reset the
// respective optional fields.
type UpdateEventRequest struct {
	Title                *string    `json:"title,omitempty"`
	Description          *string    `json:"description,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Venue                *string    `json:"venue,omitempty"`
	StartDate            *time.Time `json:"startDate,omitempty"`
	EndDate              *time.Time `json:"endDate,omitempty"`
	Capacity             *int       `json:"capacity,omitempty"`
	ClearCapacity        bool       `json:"clearCapacity,omitempty"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	ClearDeadline        bool       `json:"clearDeadline,omitempty"`
	Status               *string    `json:"status,omitempty"`
	TicketType           *string    `json:"ticketType,omitempty"`
	Price                *float64   `json:"price,omitempty"`
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially updates an event owned by the authenticated organizer.
// @Tags organizer
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "not the event owner"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /organizer/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	eventID := r.PathValue("eventID")

	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	upd := domain.EventUpdate{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Venue:                req.Venue,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Capacity:             req.Capacity,
		ClearCapacity:        req.ClearCapacity,
		RegistrationDeadline: req.RegistrationDeadline,
		ClearDeadline:        req.ClearDeadline,
	}
	if req.Status != nil {
		s, err := domain.ParseEventStatus(*req.Status)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.Status = &s
	}
	if req.TicketType != nil {
		t, err := domain.ParseTicketType(*req.TicketType)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.TicketType = &t
	}
	upd.Price = req.Price

	event, err := c.Service.UpdateEvent(r.Context(), eventID, organizerID, upd)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, EventSuccessResponse{Success: true, Event: event})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags organizer
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "not the event owner"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /organizer/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	eventID := r.PathValue("eventID")

	if err := c.Service.DeleteEvent(r.Context(), eventID, organizerID); err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "event deleted"})
}

// ListMyEvents godoc
// @Summary List the authenticated organizer's events
// @Tags organizer
// @Produce json
// @Success 200 {object} controllers.ListMyEventsSuccessResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /organizer/events [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	events, err := c.Service.ListMyEvents(r.Context(), organizerID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ListMyEventsSuccessResponse{
		Success: true,
		Data:    events,
		Count:   len(events),
	})
}

// ListRegistrationsSuccessResponse is the success response for
// GET /organizer/events/{eventID}/registrations (200).
type ListRegistrationsSuccessResponse struct {
	Success    bool                   `json:"success"`
	Data       []*domain.Registration `json:"data"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListRegistrations godoc
// @Summary List registrations for an owned event
// @Description Returns one page of non-cancelled registrations for the event, newest first.
// @Tags organizer
// @Produce json
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListRegistrationsSuccessResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 403 {object} helpers.ErrorResponse "not the event owner"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /organizer/events/{eventID}/registrations [get]
func (c *EventController) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	eventID := r.PathValue("eventID")
	p := helpers.ParsePagination(r)

	regs, total, err := c.Service.ListEventRegistrations(r.Context(), eventID, organizerID, p)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ListRegistrationsSuccessResponse{
		Success:    true,
		Data:       regs,
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, total),
	})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		helpers.WriteJSONError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "event not found")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "user not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
