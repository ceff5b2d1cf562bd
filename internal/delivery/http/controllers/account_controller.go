package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventra/internal/delivery/http/helpers"
	"eventra/internal/delivery/http/middleware"
	"eventra/internal/domain"
)

type AccountController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

func NewAccountController(logger *slog.Logger, svc domain.AccountService) *AccountController {
	return &AccountController{
		Logger:  logger,
		Service: svc,
	}
}

// MessageResponse is a plain success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserSuccessResponse wraps a single user profile.
type UserSuccessResponse struct {
	Success bool         `json:"success"`
	User    *domain.User `json:"user"`
}

// GetAccount godoc
// @Summary Get the authenticated user's profile
// @Tags account
// @Produce json
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /account [get]
func (c *AccountController) GetAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, UserSuccessResponse{Success: true, User: user})
}

// UpdateAccountRequest is the request body for PUT /account.
type UpdateAccountRequest struct {
	Email      string `json:"email,omitempty"`
	Name       string `json:"name,omitempty"`
	College    string `json:"college,omitempty"`
	Department string `json:"department,omitempty"`
}

// UpdateAccount godoc
// @Summary Update the authenticated user's profile
// @Tags account
// @Accept json
// @Produce json
// @Param body body UpdateAccountRequest true "Fields to change"
// @Success 200 {object} controllers.UserSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "email already in use"
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /account [put]
func (c *AccountController) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req UpdateAccountRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.GetByID(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.College != "" {
		user.College = req.College
	}
	if req.Department != "" {
		user.Department = req.Department
	}

	if err := c.Service.Update(r.Context(), user); err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, UserSuccessResponse{Success: true, User: user})
}

// DeleteAccount godoc
// @Summary Delete the authenticated user's account
// @Tags account
// @Produce json
// @Success 200 {object} controllers.MessageResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Security BearerAuth
// @Router /account [delete]
func (c *AccountController) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := c.Service.Delete(r.Context(), userID); err != nil {
		c.writeError(w, r, err)
		return
	}

	helpers.WriteJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "account deleted"})
}

func (c *AccountController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		helpers.WriteJSONError(w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrDuplicateEmail):
		helpers.WriteJSONError(w, http.StatusConflict, "email already in use")
	case errors.Is(err, domain.ErrUserNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, "user not found")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
	}
}
