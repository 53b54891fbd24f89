package services

import (
	"context"
	"sync"

	"eventgate/internal/domain"
)

type mockEventRepository struct {
	mu     sync.Mutex
	events map[string]*domain.Event
	err    error
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{events: make(map[string]*domain.Event)}
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

type mockAttendeeRepository struct {
	mu        sync.Mutex
	attendees map[string]*domain.Attendee
	createErr error
	updateErr error
}

func newMockAttendeeRepository() *mockAttendeeRepository {
	return &mockAttendeeRepository{attendees: make(map[string]*domain.Attendee)}
}

func (m *mockAttendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.attendees {
		if existing.EventID == a.EventID && existing.Email == a.Email {
			return domain.ErrDuplicateAttendee
		}
	}
	cp := *a
	m.attendees[a.ID] = &cp
	return nil
}

func (m *mockAttendeeRepository) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attendees[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAttendeeRepository) GetByToken(ctx context.Context, token string) (*domain.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.attendees {
		if a.Token == token {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAttendeeRepository) ListPendingDispatch(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range m.attendees {
		if a.EventID != eventID {
			continue
		}
		switch a.Delivery.Status {
		case domain.DeliveryPending, domain.DeliveryFailed, domain.DeliveryRetryScheduled:
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockAttendeeRepository) UpdateDeliveryState(ctx context.Context, attendeeID string, state domain.EmailDeliveryState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	a, ok := m.attendees[attendeeID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Delivery = state
	return nil
}

// mockCheckInRepository mirrors the storage-level uniqueness guarantee: the
// first insert for an attendee wins, every later one gets ErrAlreadyCheckedIn.
type mockCheckInRepository struct {
	mu      sync.Mutex
	records map[string]*domain.CheckInRecord
}

func newMockCheckInRepository() *mockCheckInRepository {
	return &mockCheckInRepository{records: make(map[string]*domain.CheckInRecord)}
}

func (m *mockCheckInRepository) Create(ctx context.Context, record *domain.CheckInRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.records[record.AttendeeID]; exists {
		return domain.ErrAlreadyCheckedIn
	}
	cp := *record
	m.records[record.AttendeeID] = &cp
	return nil
}

func (m *mockCheckInRepository) GetByAttendeeID(ctx context.Context, attendeeID string) (*domain.CheckInRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[attendeeID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockCheckInRepository) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// mockMailer fails the first failuresBefore sends, then succeeds, recording
// every accepted message.
type mockMailer struct {
	mu            sync.Mutex
	failuresLeft  int
	failErr       error
	sentTo        []string
	failAddresses map[string]bool
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAddresses[to] {
		return m.failErr
	}
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return m.failErr
	}
	m.sentTo = append(m.sentTo, to)
	return nil
}

type mockRenderer struct{}

func (mockRenderer) Render(templateName string, data any) (string, string, string, error) {
	return "subject", "<html></html>", "text", nil
}

type mockQRRenderer struct{}

func (mockQRRenderer) Render(token string, size int) ([]byte, error) {
	return []byte{0x89, 0x50, 0x4e, 0x47}, nil
}
