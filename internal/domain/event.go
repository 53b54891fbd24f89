package domain

import (
	"context"
	"time"
)

// Event represents a physical gathering attendees check in to.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Venue     string    `json:"venue"`
	StartsAt  time.Time `json:"starts_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields.
func NewEvent(id, name, venue string, startsAt, createdAt time.Time) *Event {
	return &Event{
		ID:        id,
		Name:      name,
		Venue:     venue,
		StartsAt:  startsAt,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
}

// EventService defines organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, name, venue string, startsAt time.Time) (*Event, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
}
