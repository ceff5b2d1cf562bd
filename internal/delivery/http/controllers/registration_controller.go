package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"eventra/internal/delivery/http/helpers"
	"eventra/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequest is the request body for POST /events/register.
type RegisterRequest struct {
	EventID         string `json:"eventId"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	College         string `json:"college"`
	Department      string `json:"department"`
	TeamName        string `json:"teamName,omitempty"`
	NumberOfMembers int    `json:"numberOfMembers,omitempty"`
	PhoneNumber     string `json:"phoneNumber"`
	AdditionalInfo  string `json:"additionalInfo,omitempty"`
}

// RegisteredRecord is the registration echo in a successful register response.
type RegisteredRecord struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// RegisterSuccessResponse is the success response for POST /events/register (200).
type RegisterSuccessResponse struct {
	Success        bool             `json:"success"`
	Message        string           `json:"message"`
	RegistrationID string           `json:"registrationId"`
	Registration   RegisteredRecord `json:"registration"`
}

// Register godoc
// @Summary Register an attendant for an event
// @Description Validates and commits a registration. The (eventId, email) pair may hold at most one confirmed seat; capacity and registration deadline are enforced atomically against concurrent submissions.
// @Tags registrations
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 200 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "missing or invalid field"
// @Failure 404 {object} helpers.ErrorResponse "event not found"
// @Failure 409 {object} helpers.ErrorResponse "reason: already_registered, event_full, or deadline_passed"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	confirmation, err := c.Service.Register(r.Context(), domain.RegistrationInput{
		EventID:         req.EventID,
		FullName:        req.FullName,
		Email:           req.Email,
		College:         req.College,
		Department:      req.Department,
		TeamName:        req.TeamName,
		NumberOfMembers: req.NumberOfMembers,
		PhoneNumber:     req.PhoneNumber,
		AdditionalInfo:  req.AdditionalInfo,
	})
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, validation.Message)
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "event not found")
			return
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			helpers.WriteJSONConflict(w, conflict.Reason, conflict.Message)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, RegisterSuccessResponse{
		Success:        true,
		Message:        "registration successful",
		RegistrationID: confirmation.RegistrationID,
		Registration: RegisteredRecord{
			ID:           confirmation.Registration.ID,
			EventID:      confirmation.Registration.EventID,
			RegisteredAt: confirmation.Registration.RegisteredAt,
		},
	})
}

// CheckRegistrationSuccessResponse is the success response for GET /events/check-registration (200).
type CheckRegistrationSuccessResponse struct {
	Success      bool                       `json:"success"`
	IsRegistered bool                       `json:"isRegistered"`
	Registration *domain.RegistrationRecord `json:"registration,omitempty"`
}

// CheckRegistration godoc
// @Summary Check whether an email is registered for an event
// @Description Read-only lookup used by registration forms for early duplicate feedback. Matches non-cancelled registrations only; email matching is case-insensitive.
// @Tags registrations
// @Produce json
// @Param eventId query string true "Event ID"
// @Param email query string true "Attendant email"
// @Success 200 {object} controllers.CheckRegistrationSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse "missing eventId or email"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /events/check-registration [get]
func (c *RegistrationController) CheckRegistration(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	email := r.URL.Query().Get("email")

	check, err := c.Service.CheckRegistration(r.Context(), eventID, email)
	if err != nil {
		var validation *domain.ValidationError
		if errors.As(err, &validation) {
			helpers.WriteJSONError(w, http.StatusBadRequest, validation.Message)
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, CheckRegistrationSuccessResponse{
		Success:      true,
		IsRegistered: check.IsRegistered,
		Registration: check.Registration,
	})
}
