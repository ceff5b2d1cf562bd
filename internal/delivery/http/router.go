package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventra/internal/delivery/http/controllers"
	"eventra/internal/delivery/http/middleware"
	"eventra/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	catalogController *controllers.CatalogController,
	registrationController *controllers.RegistrationController,
	eventController *controllers.EventController,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(verifier)

	// Public catalog and registration.
	// The check-registration literal must be registered alongside the {id}
	// pattern; the mux prefers the more specific literal segment.
	mux.HandleFunc("GET /events", catalogController.ListEvents)
	mux.HandleFunc("GET /events/check-registration", registrationController.CheckRegistration)
	mux.HandleFunc("GET /events/{id}", catalogController.GetEvent)
	mux.HandleFunc("POST /events/register", registrationController.Register)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Organizer event management
	mux.HandleFunc("POST /organizer/events", authed(eventController.CreateEvent))
	mux.HandleFunc("GET /organizer/events", authed(eventController.ListMyEvents))
	mux.HandleFunc("PUT /organizer/events/{eventID}", authed(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /organizer/events/{eventID}", authed(eventController.DeleteEvent))
	mux.HandleFunc("GET /organizer/events/{eventID}/registrations", authed(eventController.ListRegistrations))

	// Account
	mux.HandleFunc("GET /account", authed(accountController.GetAccount))
	mux.HandleFunc("PUT /account", authed(accountController.UpdateAccount))
	mux.HandleFunc("DELETE /account", authed(accountController.DeleteAccount))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
