package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventgate/internal/domain"
)

const qrImageSize = 256

// DispatchConfig carries the tunables the pipeline exposes.
type DispatchConfig struct {
	// Pacing is the mandatory delay between consecutive sends in a batch,
	// a deliberate throttle to stay under outbound-mail rate limits.
	Pacing time.Duration
	// MaxRetries bounds attempts per attendee before delivery goes to
	// failed. Only an explicit force-retry goes past it.
	MaxRetries int
}

type dispatchService struct {
	attendeeRepo domain.AttendeeRepository
	eventRepo    domain.EventRepository
	mailer       domain.Mailer
	renderer     domain.EmailTemplateRenderer
	qr           domain.QRRenderer
	cfg          DispatchConfig
	logger       *slog.Logger

	// Guards against two admins starting a batch for the same event before
	// either batch's sent transitions are visible to the other.
	mu            sync.Mutex
	activeBatches map[string]struct{}
}

// NewDispatchService creates the email dispatch pipeline.
func NewDispatchService(
	attendeeRepo domain.AttendeeRepository,
	eventRepo domain.EventRepository,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	qr domain.QRRenderer,
	cfg DispatchConfig,
	logger *slog.Logger,
) domain.DispatchService {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return &dispatchService{
		attendeeRepo:  attendeeRepo,
		eventRepo:     eventRepo,
		mailer:        mailer,
		renderer:      renderer,
		qr:            qr,
		cfg:           cfg,
		logger:        logger,
		activeBatches: make(map[string]struct{}),
	}
}

func (s *dispatchService) SendOne(ctx context.Context, attendeeID string, forceRetry bool) (*domain.DispatchOutcome, error) {
	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrAttendeeNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	if attendee.Token == "" {
		return nil, domain.ErrMissingToken
	}

	state := attendee.Delivery
	if state.RetryCount >= s.cfg.MaxRetries && !forceRetry {
		// Circuit breaker: a permanently-bad address must not consume
		// resources indefinitely. Only an operator override proceeds.
		return nil, domain.ErrRetryLimitExceeded
	}
	if forceRetry {
		state.RetryCount = 0
	}

	sendErr := s.deliver(ctx, attendee)

	now := time.Now()
	state.LastAttemptAt = &now
	if sendErr == nil {
		state.Status = domain.DeliverySent
		state.LastError = ""
	} else {
		state.RetryCount++
		state.LastError = sendErr.Error()
		if state.RetryCount < s.cfg.MaxRetries {
			state.Status = domain.DeliveryRetryScheduled
		} else {
			state.Status = domain.DeliveryFailed
		}
	}

	if err := s.attendeeRepo.UpdateDeliveryState(ctx, attendee.ID, state); err != nil {
		return nil, fmt.Errorf("update delivery state: %w", err)
	}

	outcome := &domain.DispatchOutcome{
		AttendeeID: attendee.ID,
		Status:     state.Status,
		RetryCount: state.RetryCount,
		Error:      state.LastError,
	}
	if sendErr != nil {
		s.logger.WarnContext(ctx, "ticket email failed",
			"attendee_id", attendee.ID, "retry_count", state.RetryCount, "err", sendErr)
	} else {
		s.logger.InfoContext(ctx, "ticket email sent", "attendee_id", attendee.ID)
	}
	return outcome, nil
}

func (s *dispatchService) SendBatch(ctx context.Context, eventID string) (*domain.BatchResult, error) {
	if !s.acquireBatch(eventID) {
		return nil, domain.ErrBatchInProgress
	}
	defer s.releaseBatch(eventID)

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	// Sent attendees are excluded by the query, so re-running a batch never
	// duplicates mail.
	attendees, err := s.attendeeRepo.ListPendingDispatch(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list pending attendees: %w", err)
	}

	result := &domain.BatchResult{Total: len(attendees), Errors: []string{}}
	for i, attendee := range attendees {
		if i > 0 {
			// Cancellation stops before the next send; an in-flight send is
			// always allowed to complete so delivery state stays unambiguous.
			select {
			case <-ctx.Done():
				s.logger.InfoContext(ctx, "dispatch batch cancelled",
					"event_id", eventID, "sent", result.Sent, "failed", result.Failed)
				return result, ctx.Err()
			case <-time.After(s.cfg.Pacing):
			}
		}

		outcome, err := s.SendOne(ctx, attendee.ID, false)
		if err != nil {
			// Per-item failures are recorded and never abort the rest.
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", attendee.ID, err.Error()))
			continue
		}
		if outcome.Status == domain.DeliverySent {
			result.Sent++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", attendee.ID, outcome.Error))
		}
	}

	s.logger.InfoContext(ctx, "dispatch batch finished",
		"event_id", eventID, "total", result.Total, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

func (s *dispatchService) deliver(ctx context.Context, attendee *domain.Attendee) error {
	event, err := s.eventRepo.GetByID(ctx, attendee.EventID)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}

	png, err := s.qr.Render(attendee.Token, qrImageSize)
	if err != nil {
		return fmt.Errorf("render qr: %w", err)
	}

	data := &domain.TicketEmailData{
		Name:        attendee.Name,
		EventName:   event.Name,
		EventVenue:  event.Venue,
		EventDate:   event.StartsAt.Format("Monday, 2 January 2006 at 15:04"),
		Token:       attendee.Token,
		QRImageB64:  base64.StdEncoding.EncodeToString(png),
		CouponCount: attendee.CouponCount(),
	}
	subject, htmlBody, textBody, err := s.renderer.Render("ticket", data)
	if err != nil {
		return fmt.Errorf("render ticket template: %w", err)
	}
	return s.mailer.Send(attendee.Email, subject, htmlBody, textBody)
}

func (s *dispatchService) acquireBatch(eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, active := s.activeBatches[eventID]; active {
		return false
	}
	s.activeBatches[eventID] = struct{}{}
	return true
}

func (s *dispatchService) releaseBatch(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.activeBatches, eventID)
}
