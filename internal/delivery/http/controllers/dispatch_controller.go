package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventgate/internal/delivery/http/helpers"
	"eventgate/internal/domain"
)

type DispatchController struct {
	Logger  *slog.Logger
	Service domain.DispatchService
}

func NewDispatchController(logger *slog.Logger, svc domain.DispatchService) *DispatchController {
	return &DispatchController{
		Logger:  logger,
		Service: svc,
	}
}

// SendOneSuccessResponse is the success response envelope for POST /dispatch/attendees/{attendeeID} (200).
type SendOneSuccessResponse struct {
	Data  *domain.DispatchOutcome `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// SendOne godoc
// @Summary Send or resend one attendee's ticket email
// @Description Attempts delivery for a single attendee. Passing force=true resets the retry counter and proceeds past the retry ceiling; use it only as an explicit operator override. A delivery failure is reported in the outcome, not as an HTTP error.
// @Tags dispatch
// @Produce json
// @Security BearerAuth
// @Param attendeeID path string true "Attendee ID (UUID)"
// @Param force query bool false "Reset the retry counter and proceed past the ceiling"
// @Success 200 {object} controllers.SendOneSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (retry limit exceeded or token missing)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dispatch/attendees/{attendeeID} [post]
func (c *DispatchController) SendOne(w http.ResponseWriter, r *http.Request) {
	attendeeID := r.PathValue("attendeeID")
	if attendeeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing attendeeID")
		return
	}
	force := r.URL.Query().Get("force") == "true"

	outcome, err := c.Service.SendOne(r.Context(), attendeeID, force)
	if err != nil {
		if errors.Is(err, domain.ErrAttendeeNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
			return
		}
		if errors.Is(err, domain.ErrRetryLimitExceeded) || errors.Is(err, domain.ErrMissingToken) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, outcome)
}

// SendBatchSuccessResponse is the success response envelope for POST /dispatch/events/{eventID} (200).
type SendBatchSuccessResponse struct {
	Data  *domain.BatchResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// SendBatch godoc
// @Summary Send ticket emails to every attendee of an event not yet delivered
// @Description Processes the event's pending, failed and retry-scheduled attendees sequentially with a pacing delay between sends. Already-sent attendees are skipped so re-running never duplicates mail. Individual failures are collected in the result and never abort the rest of the batch.
// @Tags dispatch
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.SendBatchSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (batch already running)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /dispatch/events/{eventID} [post]
func (c *DispatchController) SendBatch(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}

	result, err := c.Service.SendBatch(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		if errors.Is(err, domain.ErrBatchInProgress) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
