// Package main wires the check-in core together and serves its HTTP API.
//
// @title EventGate API
// @version 1.0
// @description Event check-in backend: token issuance, verification, exactly-once check-in, and ticket email dispatch.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"eventgate/config"
	"eventgate/internal/adapters/auth"
	"eventgate/internal/adapters/email"
	"eventgate/internal/adapters/qr"
	tokencodec "eventgate/internal/adapters/token"
	httpdelivery "eventgate/internal/delivery/http"
	"eventgate/internal/delivery/http/controllers"
	"eventgate/internal/delivery/http/middleware"
	"eventgate/internal/repository/postgres"
	"eventgate/internal/services"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if len(cfg.TokenKey) == 0 {
		logger.Error("TOKEN_ENCRYPTION_KEY is required")
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	codec, err := tokencodec.NewCodec(cfg.TokenKey)
	if err != nil {
		logger.Error("failed to create token codec", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
		SMTP: email.SMTPConfig{
			Host:     cfg.Email.SMTPHost,
			Port:     cfg.Email.SMTPPort,
			Username: cfg.Email.SMTPUsername,
			Password: cfg.Email.SMTPPassword,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	qrRenderer := qr.NewRenderer()
	templateRenderer := email.NewTemplateRenderer()
	hasher := auth.NewBcryptHasher(12)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	eventRepo := postgres.NewEventRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)
	operatorRepo := postgres.NewOperatorRepository(db)

	eventService := services.NewEventService(eventRepo)
	attendeeService := services.NewAttendeeService(attendeeRepo, eventRepo, codec)
	verificationService := services.NewVerificationService(codec, attendeeRepo, checkInRepo, logger)
	checkInService := services.NewCheckInService(attendeeRepo, checkInRepo)
	dispatchService := services.NewDispatchService(attendeeRepo, eventRepo, mailer, templateRenderer, qrRenderer,
		services.DispatchConfig{Pacing: cfg.DispatchPacing, MaxRetries: cfg.DispatchMaxRetries}, logger)
	authService := services.NewAuthService(operatorRepo, hasher, issuer)

	mux := httpdelivery.NewRouter(
		verifier,
		controllers.NewAuthController(logger, authService),
		controllers.NewEventController(logger, eventService),
		controllers.NewAttendeeController(logger, attendeeService, qrRenderer),
		controllers.NewCheckInController(logger, verificationService, checkInService),
		controllers.NewDispatchController(logger, dispatchService),
	)

	handler := middleware.CORSMiddleware(middleware.LoggingMiddleware(logger, mux))

	logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
