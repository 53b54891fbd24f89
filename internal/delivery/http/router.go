package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventgate/internal/delivery/http/controllers"
	"eventgate/internal/delivery/http/middleware"
	"eventgate/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	attendeeController *controllers.AttendeeController,
	checkInController *controllers.CheckInController,
	dispatchController *controllers.DispatchController,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Events and attendees
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(eventController.GetEvent))
	mux.HandleFunc("POST /events/{eventID}/attendees", requireAuth(attendeeController.CreateAttendee))
	mux.HandleFunc("GET /events/{eventID}/attendees/{attendeeID}/qr", requireAuth(attendeeController.GetQR))

	// Check-in stations
	mux.HandleFunc("POST /checkin/verify", requireAuth(checkInController.Verify))
	mux.HandleFunc("POST /checkin/confirm", requireAuth(checkInController.Confirm))

	// Ticket dispatch
	mux.HandleFunc("POST /dispatch/attendees/{attendeeID}", requireAuth(dispatchController.SendOne))
	mux.HandleFunc("POST /dispatch/events/{eventID}", requireAuth(dispatchController.SendBatch))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
