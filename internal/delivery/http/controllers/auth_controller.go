package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventra/internal/delivery/http/helpers"
	"eventra/internal/domain"
)

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AccountService
}

func NewAuthController(logger *slog.Logger, svc domain.AccountService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	College    string `json:"college,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
}

func (r *SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// AuthSuccessResponse is the success response for signup and login.
type AuthSuccessResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// SignUp godoc
// @Summary Create an account
// @Description Registers a platform account and returns a bearer token. Role defaults to attendee; accepted roles are attendee, organizer, volunteer, and sponsor.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Account details"
// @Success 201 {object} controllers.AuthSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "email already in use"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name, req.College, req.Department, role)
	if err != nil {
		var validation *domain.ValidationError
		switch {
		case errors.As(err, &validation):
			helpers.WriteJSONError(w, http.StatusBadRequest, validation.Message)
		case errors.Is(err, domain.ErrDuplicateEmail):
			helpers.WriteJSONError(w, http.StatusConflict, "email already in use")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	helpers.WriteJSON(w, http.StatusCreated, AuthSuccessResponse{Success: true, Token: token, User: user})
}

// Login godoc
// @Summary Log in
// @Description Authenticates by email and password and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.AuthSuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse "invalid email or password"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	helpers.WriteJSON(w, http.StatusOK, AuthSuccessResponse{Success: true, Token: token, User: user})
}
