package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokencodec "eventgate/internal/adapters/token"
	"eventgate/internal/domain"
)

func newAttendeeFixture(t *testing.T) (domain.AttendeeService, *mockAttendeeRepository, *mockEventRepository, domain.TokenCodec) {
	t.Helper()
	codec, err := tokencodec.NewCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	attendeeRepo := newMockAttendeeRepository()
	eventRepo := newMockEventRepository()
	require.NoError(t, eventRepo.Create(context.Background(), domain.NewEvent(
		"ev-1", "Annual Gathering", "Town Hall", time.Now().Add(24*time.Hour), time.Now())))
	return NewAttendeeService(attendeeRepo, eventRepo, codec), attendeeRepo, eventRepo, codec
}

func TestCreateAttendee_MintsTokenBeforeInsert(t *testing.T) {
	svc, attendeeRepo, _, codec := newAttendeeFixture(t)

	attendee, err := svc.CreateAttendee(context.Background(), "ev-1", domain.NewAttendeeInput{
		Name: "Asha Rao", Email: "Asha@Example.com", Adults: 2, Children: 1,
		VegMeals: 2, NonVegMeals: 1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, attendee.ID)
	require.NotEmpty(t, attendee.Token)
	assert.Equal(t, "asha@example.com", attendee.Email)
	assert.Equal(t, domain.DeliveryPending, attendee.Delivery.Status)
	assert.Equal(t, 3, attendee.CouponCount())

	// The stored record carries the same token, and the token decodes back
	// to this attendee and event.
	stored, err := attendeeRepo.GetByToken(context.Background(), attendee.Token)
	require.NoError(t, err)
	assert.Equal(t, attendee.ID, stored.ID)

	payload, err := codec.Decode(attendee.Token)
	require.NoError(t, err)
	assert.Equal(t, attendee.ID, payload.AttendeeID)
	assert.Equal(t, "ev-1", payload.EventID)
	assert.NotEmpty(t, payload.Nonce)
}

func TestCreateAttendee_EventNotFound(t *testing.T) {
	svc, _, _, _ := newAttendeeFixture(t)

	_, err := svc.CreateAttendee(context.Background(), "ghost", domain.NewAttendeeInput{
		Name: "A", Email: "a@example.com", Adults: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAttendee_DuplicateEmailPerEvent(t *testing.T) {
	svc, _, _, _ := newAttendeeFixture(t)

	input := domain.NewAttendeeInput{Name: "A", Email: "a@example.com", Adults: 1}
	_, err := svc.CreateAttendee(context.Background(), "ev-1", input)
	require.NoError(t, err)

	_, err = svc.CreateAttendee(context.Background(), "ev-1", input)
	assert.ErrorIs(t, err, domain.ErrDuplicateAttendee)
}

func TestCreateAttendee_Validation(t *testing.T) {
	svc, _, _, _ := newAttendeeFixture(t)

	tests := []struct {
		name  string
		input domain.NewAttendeeInput
	}{
		{name: "missing name", input: domain.NewAttendeeInput{Email: "a@example.com", Adults: 1}},
		{name: "missing email", input: domain.NewAttendeeInput{Name: "A", Adults: 1}},
		{name: "zero headcount", input: domain.NewAttendeeInput{Name: "A", Email: "a@example.com"}},
		{name: "negative adults", input: domain.NewAttendeeInput{Name: "A", Email: "a@example.com", Adults: -1, Children: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAttendee(context.Background(), "ev-1", tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
