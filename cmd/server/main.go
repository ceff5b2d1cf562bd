package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventra/config"
	_ "eventra/docs"
	"eventra/internal/adapters/auth"
	"eventra/internal/adapters/email"
	delivery "eventra/internal/delivery/http"
	"eventra/internal/delivery/http/controllers"
	"eventra/internal/delivery/http/middleware"
	"eventra/internal/repository/postgres"
	"eventra/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Eventra API
// @version 1.0
// @description College event management API: public event catalog, attendant registration, organizer event management, and accounts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	if err := postgres.RunMigrations(cfg.DBUrl); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to reach database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(12)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	catalogService := services.NewCatalogService(eventRepo)
	registrationService := services.NewRegistrationService(registrationRepo)
	eventService := services.NewEventService(eventRepo, registrationRepo, userRepo, 5*time.Second)
	accountService := services.NewAccountService(userRepo, hasher, jwtManager, cfg.TokenExpiry, emailService)

	router := delivery.NewRouter(
		controllers.NewCatalogController(logger, catalogService),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewEventController(logger, eventService),
		controllers.NewAuthController(logger, accountService),
		controllers.NewAccountController(logger, accountService),
		jwtManager,
	)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.Logging(logger, router))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
