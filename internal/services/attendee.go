package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventgate/internal/domain"
)

type attendeeService struct {
	attendeeRepo domain.AttendeeRepository
	eventRepo    domain.EventRepository
	codec        domain.TokenCodec
}

// NewAttendeeService creates an AttendeeService with the given repositories
// and token codec.
func NewAttendeeService(
	attendeeRepo domain.AttendeeRepository,
	eventRepo domain.EventRepository,
	codec domain.TokenCodec,
) domain.AttendeeService {
	return &attendeeService{
		attendeeRepo: attendeeRepo,
		eventRepo:    eventRepo,
		codec:        codec,
	}
}

func (s *attendeeService) CreateAttendee(ctx context.Context, eventID string, input domain.NewAttendeeInput) (*domain.Attendee, error) {
	// Ensure the event exists.
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if input.Adults < 0 || input.Children < 0 || input.Adults+input.Children == 0 {
		return nil, fmt.Errorf("%w: headcount must be positive", domain.ErrInvalidInput)
	}

	now := time.Now()
	attendee := &domain.Attendee{
		ID:           uuid.NewString(),
		EventID:      eventID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		Adults:       input.Adults,
		Children:     input.Children,
		VegMeals:     input.VegMeals,
		NonVegMeals:  input.NonVegMeals,
		DietaryNotes: strings.TrimSpace(input.DietaryNotes),
		Delivery:     domain.EmailDeliveryState{Status: domain.DeliveryPending},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The token is minted before the insert so the record is never visible
	// without one. It is immutable from here on; re-issuing a code means
	// creating a new attendee record.
	token, err := s.codec.Encode(domain.TokenPayload{
		EventID:    eventID,
		AttendeeID: attendee.ID,
		IssuedAtMS: now.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	attendee.Token = token

	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		if errors.Is(err, domain.ErrDuplicateAttendee) {
			return nil, domain.ErrDuplicateAttendee
		}
		return nil, fmt.Errorf("create attendee: %w", err)
	}
	return attendee, nil
}

func (s *attendeeService) GetAttendee(ctx context.Context, attendeeID string) (*domain.Attendee, error) {
	attendee, err := s.attendeeRepo.GetByID(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	return attendee, nil
}
