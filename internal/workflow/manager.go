package workflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/kafka"
)

// UseCase is the command surface the presentation layer talks to.
type UseCase interface {
	Create(ctx context.Context, offer domain.FlightOffer, passengerCount int) (Snapshot, error)
	Get(ctx context.Context, id string) (Snapshot, error)
	Advance(ctx context.Context, id string) (Snapshot, error)
	Back(ctx context.Context, id string) (Snapshot, error)
	UpdatePassenger(ctx context.Context, id string, index int, p domain.Passenger) (Snapshot, error)
	UpdatePayment(ctx context.Context, id string, p domain.PaymentDetails) (Snapshot, error)
	UpdateSpecialRequests(ctx context.Context, id, text string) (Snapshot, error)
}

// Producer publishes booking events. Nil producers are tolerated.
type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

var ErrNotFound = errors.New("booking workflow not found")

// Manager holds the live workflow instances, one per booking attempt. State
// lives only in memory for the duration of the attempt.
type Manager struct {
	mu        sync.Mutex
	workflows map[string]*Workflow

	submitter          Submitter
	producer           Producer
	confirmationsTopic string
	notificationsTopic string
	logger             *zap.Logger
	now                func() time.Time
}

type ManagerOption func(*Manager)

func WithProducer(p Producer, confirmationsTopic string) ManagerOption {
	return func(m *Manager) {
		m.producer = p
		m.confirmationsTopic = confirmationsTopic
	}
}

func WithNotificationsTopic(topic string) ManagerOption {
	return func(m *Manager) {
		m.notificationsTopic = topic
	}
}

func WithManagerClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(submitter Submitter, logger *zap.Logger, opts ...ManagerOption) *Manager {
	m := &Manager{
		workflows: make(map[string]*Workflow),
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Create(ctx context.Context, offer domain.FlightOffer, passengerCount int) (Snapshot, error) {
	w, err := New(offer, passengerCount, m.submitter, WithClock(m.now))
	if err != nil {
		return Snapshot{}, err
	}

	m.mu.Lock()
	m.workflows[w.ID()] = w
	m.mu.Unlock()

	m.logger.Info("booking workflow created",
		zap.String("workflow_id", w.ID()),
		zap.Int("passengers", passengerCount),
		zap.String("offer_id", offer.ID))
	return w.Snapshot(), nil
}

func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	return w.Snapshot(), nil
}

func (m *Manager) Advance(ctx context.Context, id string) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	step, err := w.Advance(ctx)
	if err != nil {
		return w.Snapshot(), err
	}
	if step == StepConfirmation {
		m.publishConfirmed(ctx, w.Snapshot())
	}
	return w.Snapshot(), nil
}

func (m *Manager) Back(ctx context.Context, id string) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	if _, err := w.Back(); err != nil {
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

func (m *Manager) UpdatePassenger(ctx context.Context, id string, index int, p domain.Passenger) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := w.UpdatePassenger(index, p); err != nil {
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

func (m *Manager) UpdatePayment(ctx context.Context, id string, p domain.PaymentDetails) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := w.UpdatePayment(p); err != nil {
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

func (m *Manager) UpdateSpecialRequests(ctx context.Context, id, text string) (Snapshot, error) {
	w, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	if err := w.UpdateSpecialRequests(text); err != nil {
		return w.Snapshot(), err
	}
	return w.Snapshot(), nil
}

// SweepIdle drops workflows idle for longer than maxIdle. Instances with a
// submission in flight are skipped. Returns the number removed.
func (m *Manager) SweepIdle(maxIdle time.Duration) int {
	deadline := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, w := range m.workflows {
		snap := w.Snapshot()
		if snap.Processing || !snap.UpdatedAt.Before(deadline) {
			continue
		}
		delete(m.workflows, id)
		removed++
	}
	if removed > 0 {
		m.logger.Info("swept idle booking workflows", zap.Int("removed", removed))
	}
	return removed
}

func (m *Manager) lookup(id string) (*Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.workflows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

// publishConfirmed emits the confirmation event. Publish failures never fail
// the booking; the confirmation already exists.
func (m *Manager) publishConfirmed(ctx context.Context, snap Snapshot) {
	if m.producer == nil || snap.Confirmation == nil {
		return
	}
	event := kafka.ConfirmationEvent{
		Type:               "booking_confirmed",
		WorkflowID:         snap.ID,
		BookingReference:   snap.Confirmation.BookingReference,
		ConfirmationNumber: snap.Confirmation.ConfirmationNumber,
		Email:              snap.Data.Contact.Email,
		FlightNumber:       snap.Confirmation.FlightDetails.FlightNumber,
		TotalAmount:        snap.Confirmation.TotalAmount,
		Status:             string(snap.Confirmation.Status),
		BookingDate:        snap.Confirmation.BookingDate,
	}
	for _, topic := range []string{m.confirmationsTopic, m.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := m.producer.Publish(ctx, topic, snap.ID, event); err != nil {
			m.logger.Warn("failed to publish booking_confirmed event",
				zap.String("workflow_id", snap.ID),
				zap.String("topic", topic),
				zap.Error(err))
		}
	}
}

var _ UseCase = (*Manager)(nil)
