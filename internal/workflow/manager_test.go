package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/bookingflow/internal/domain"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func managerAtPayment(t *testing.T, m *Manager) string {
	t.Helper()
	ctx := context.Background()

	snap, err := m.Create(ctx, validOffer(), 1)
	assert.NoError(t, err)

	_, err = m.Advance(ctx, snap.ID)
	assert.NoError(t, err)
	_, err = m.UpdatePassenger(ctx, snap.ID, 0, validPassenger())
	assert.NoError(t, err)
	_, err = m.Advance(ctx, snap.ID)
	assert.NoError(t, err)
	_, err = m.UpdatePayment(ctx, snap.ID, validPayment())
	assert.NoError(t, err)

	return snap.ID
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(&MockSubmitter{}, nil)

	snap, err := m.Create(context.Background(), validOffer(), 3)
	assert.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Len(t, snap.Data.Passengers, 3)

	got, err := m.Get(context.Background(), snap.ID)
	assert.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
}

func TestManager_GetNotFound(t *testing.T) {
	m := NewManager(&MockSubmitter{}, nil)

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_CreateRejectsBadCount(t *testing.T) {
	m := NewManager(&MockSubmitter{}, nil)

	_, err := m.Create(context.Background(), validOffer(), 0)
	assert.Error(t, err)
}

func TestManager_AdvancePublishesConfirmation(t *testing.T) {
	submitter := &MockSubmitter{}
	conf := &domain.BookingConfirmation{
		BookingReference:   "REF45678",
		ConfirmationNumber: "AACNF123",
		TotalAmount:        "450.00",
		Status:             domain.BookingStatusConfirmed,
		FlightDetails:      domain.FlightDetails{FlightNumber: "AA123"},
	}
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return(conf, nil).Once()

	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "confirmations", mock.Anything, mock.Anything).Return(nil).Once()
	producer.On("Publish", mock.Anything, "notifications", mock.Anything, mock.Anything).Return(nil).Once()

	m := NewManager(submitter, nil,
		WithProducer(producer, "confirmations"),
		WithNotificationsTopic("notifications"),
	)
	id := managerAtPayment(t, m)

	snap, err := m.Advance(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, StepConfirmation, snap.Step)
	assert.Equal(t, "REF45678", snap.Confirmation.BookingReference)

	submitter.AssertExpectations(t)
	producer.AssertExpectations(t)
}

// A failed publish is logged and swallowed: the booking is already confirmed.
func TestManager_PublishFailureDoesNotFailBooking(t *testing.T) {
	submitter := &MockSubmitter{}
	submitter.On("Submit", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.BookingConfirmation{BookingReference: "REF45678"}, nil).Once()

	producer := &MockProducer{}
	producer.On("Publish", mock.Anything, "confirmations", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()

	m := NewManager(submitter, nil, WithProducer(producer, "confirmations"))
	id := managerAtPayment(t, m)

	snap, err := m.Advance(context.Background(), id)

	assert.NoError(t, err)
	assert.Equal(t, StepConfirmation, snap.Step)
	producer.AssertExpectations(t)
}

func TestManager_AdvanceGuardDenialPassesThrough(t *testing.T) {
	m := NewManager(&MockSubmitter{}, nil)

	snap, err := m.Create(context.Background(), validOffer(), 1)
	assert.NoError(t, err)
	_, err = m.Advance(context.Background(), snap.ID)
	assert.NoError(t, err)

	_, err = m.Advance(context.Background(), snap.ID)
	var denied *DeniedError
	assert.ErrorAs(t, err, &denied)
	assert.NotEmpty(t, denied.Errors)
}

func TestManager_SweepIdle(t *testing.T) {
	current := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	m := NewManager(&MockSubmitter{}, nil, WithManagerClock(func() time.Time { return current }))

	stale, err := m.Create(context.Background(), validOffer(), 1)
	assert.NoError(t, err)

	current = current.Add(40 * time.Minute)
	fresh, err := m.Create(context.Background(), validOffer(), 1)
	assert.NoError(t, err)

	removed := m.SweepIdle(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, err = m.Get(context.Background(), stale.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(context.Background(), fresh.ID)
	assert.NoError(t, err)
}
