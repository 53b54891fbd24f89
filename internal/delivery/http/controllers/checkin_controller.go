package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"eventgate/internal/delivery/http/helpers"
	"eventgate/internal/delivery/http/middleware"
	"eventgate/internal/domain"
)

type CheckInController struct {
	Logger       *slog.Logger
	Verification domain.VerificationService
	CheckIn      domain.CheckInService
}

func NewCheckInController(logger *slog.Logger, verification domain.VerificationService, checkIn domain.CheckInService) *CheckInController {
	return &CheckInController{
		Logger:       logger,
		Verification: verification,
		CheckIn:      checkIn,
	}
}

// VerifyRequest is the request body for POST /checkin/verify.
type VerifyRequest struct {
	RawScan string `json:"raw_scan"`
	EventID string `json:"event_id"`
}

// Validate implements helpers.Validator.
func (r *VerifyRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(r.RawScan) == "" {
		errs = append(errs, "raw_scan is required")
	}
	if strings.TrimSpace(r.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// VerifySuccessResponse is the success response envelope for POST /checkin/verify (200).
type VerifySuccessResponse struct {
	Data  *domain.VerificationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// Verify godoc
// @Summary Verify a scanned check-in code
// @Description Resolves a raw scanned string against the station's event and reports eligibility. Read-only: re-scanning the same code any number of times has no side effect. Invalid, wrong-event and unknown codes are reported in the result status, not as HTTP errors.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.VerifyRequest true "Raw scan and station event"
// @Success 200 {object} controllers.VerifySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/verify [post]
func (c *CheckInController) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	result, err := c.Verification.Verify(r.Context(), req.RawScan, req.EventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ConfirmRequest is the request body for POST /checkin/confirm.
type ConfirmRequest struct {
	AttendeeID string `json:"attendee_id"`
}

// Validate implements helpers.Validator.
func (r *ConfirmRequest) Validate() []string {
	if strings.TrimSpace(r.AttendeeID) == "" {
		return []string{"attendee_id is required"}
	}
	return nil
}

// ConfirmResponseData is the payload for a committed or already-done check-in.
type ConfirmResponseData struct {
	AlreadyCheckedIn bool                  `json:"already_checked_in"`
	Record           *domain.CheckInRecord `json:"record,omitempty"`
}

// ConfirmSuccessResponse is the success response envelope for POST /checkin/confirm (200 or 201).
type ConfirmSuccessResponse struct {
	Data  *ConfirmResponseData `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Confirm godoc
// @Summary Commit a check-in after operator confirmation
// @Description Transitions the attendee to checked-in exactly once, recording the operator and a coupon count recomputed from live headcount fields. Losing a concurrent race returns 200 with already_checked_in=true, which stations must render as informational, not as a failure.
// @Tags checkin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.ConfirmRequest true "Attendee to check in"
// @Success 200 {object} controllers.ConfirmSuccessResponse "Already checked in"
// @Success 201 {object} controllers.ConfirmSuccessResponse "Check-in committed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checkin/confirm [post]
func (c *CheckInController) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	operatorID, ok := middleware.OperatorIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	record, err := c.CheckIn.Confirm(r.Context(), req.AttendeeID, operatorID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCheckedIn) {
			helpers.WriteJSONSuccess(w, http.StatusOK, &ConfirmResponseData{AlreadyCheckedIn: true})
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendee not found")
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, &ConfirmResponseData{Record: record})
}
