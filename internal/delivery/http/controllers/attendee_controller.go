package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventgate/internal/delivery/http/helpers"
	"eventgate/internal/domain"
)

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
	QR      domain.QRRenderer
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService, qr domain.QRRenderer) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
		QR:      qr,
	}
}

// CreateAttendeeRequest is the request body for POST /events/{eventID}/attendees.
type CreateAttendeeRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	VegMeals     int    `json:"veg_meals"`
	NonVegMeals  int    `json:"nonveg_meals"`
	DietaryNotes string `json:"dietary_notes"`
}

// Validate implements helpers.Validator.
func (r *CreateAttendeeRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, "email is required")
	}
	if r.Adults < 0 || r.Children < 0 {
		errs = append(errs, "headcounts must not be negative")
	}
	if r.Adults+r.Children == 0 {
		errs = append(errs, "at least one attendee is required")
	}
	return errs
}

// CreateAttendeeSuccessResponse is the success response envelope for POST /events/{eventID}/attendees (201).
type CreateAttendeeSuccessResponse struct {
	Data  *domain.Attendee  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateAttendee godoc
// @Summary Register an attendee for an event
// @Description Creates an attendee and mints their encoded check-in token before the record is stored; the token is immutable afterwards. Email must be unique within the event.
// @Tags attendee
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body controllers.CreateAttendeeRequest true "Attendee details"
// @Success 201 {object} controllers.CreateAttendeeSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate email for event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [post]
func (c *AttendeeController) CreateAttendee(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	var req CreateAttendeeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	attendee, err := c.Service.CreateAttendee(r.Context(), eventID, domain.NewAttendeeInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Adults:       req.Adults,
		Children:     req.Children,
		VegMeals:     req.VegMeals,
		NonVegMeals:  req.NonVegMeals,
		DietaryNotes: req.DietaryNotes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrDuplicateAttendee) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, attendee)
}

// GetQR godoc
// @Summary Get the attendee's check-in code as a PNG
// @Description Renders the attendee's stored encoded token as a scannable QR image. The size query parameter is clamped to 64-1024 pixels.
// @Tags attendee
// @Produce png
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Param size query int false "Image edge in pixels (default 256)"
// @Success 200 {file} file "PNG image"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees/{attendeeID}/qr [get]
func (c *AttendeeController) GetQR(w http.ResponseWriter, r *http.Request) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}

	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			size = n
		}
	}
	if size < 64 {
		size = 64
	}
	if size > 1024 {
		size = 1024
	}

	attendee, err := c.Service.GetAttendee(r.Context(), attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if attendee.EventID != r.PathValue("eventID") {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
		return
	}

	png, err := c.QR.Render(attendee.Token, size)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
