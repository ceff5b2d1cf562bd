package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventra/internal/delivery/http/helpers"
	"eventra/internal/domain"
)

type CatalogController struct {
	Logger  *slog.Logger
	Service domain.CatalogService
}

func NewCatalogController(logger *slog.Logger, svc domain.CatalogService) *CatalogController {
	return &CatalogController{
		Logger:  logger,
		Service: svc,
	}
}

// parseDateParam accepts RFC 3339 timestamps or plain dates (2006-01-02).
func parseDateParam(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, true
	}
	return nil, false
}

// ListEventsSuccessResponse is the success response for GET /events (200).
type ListEventsSuccessResponse struct {
	Success bool                     `json:"success"`
	Data    []*domain.EventWithStats `json:"data"`
	Count   int                      `json:"count"`
}

// ListEvents godoc
// @Summary List published events
// @Description Returns published events ordered by start date ascending. Supports category exact match ("All" matches everything), case-insensitive substring search over title/description/venue, and start-date bounds.
// @Tags events
// @Produce json
// @Param category query string false "Category (exact match, or All)"
// @Param search query string false "Free-text search"
// @Param startDate query string false "Earliest start date (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Latest start date (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "invalid date parameter"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events [get]
func (c *CatalogController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startDate, ok := parseDateParam(q.Get("startDate"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endDate, ok := parseDateParam(q.Get("endDate"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	events, err := c.Service.ListEvents(r.Context(), domain.EventFilter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, ListEventsSuccessResponse{
		Success: true,
		Data:    events,
		Count:   len(events),
	})
}

// GetEventSuccessResponse is the success response for GET /events/{id} (200).
type GetEventSuccessResponse struct {
	Success bool                `json:"success"`
	Event   *domain.EventDetail `json:"event"`
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event detail including organizer display name, registered count, available spots (null when capacity is unset), and registration deadline.
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/{id} [get]
func (c *CatalogController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, "missing event id")
		return
	}

	detail, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, GetEventSuccessResponse{Success: true, Event: detail})
}
