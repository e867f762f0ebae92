// Package workflow implements the multi-step booking state machine: ordered
// step progression gated by the domain validators, the booking-data
// aggregate the steps fill in, and the single asynchronous submission that
// turns a completed aggregate into a confirmation.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Domenick1991/bookingflow/internal/domain"
	"github.com/Domenick1991/bookingflow/internal/validate"
)

type Step string

const (
	StepFlightSelected   Step = "flight-selected"
	StepPassengerDetails Step = "passenger-details"
	StepPayment          Step = "payment"
	StepConfirmation     Step = "confirmation"
)

// Submitter finalizes a validated booking. Implemented by confirm.Generator.
type Submitter interface {
	Submit(ctx context.Context, data domain.BookingData, offer domain.FlightOffer) (*domain.BookingConfirmation, error)
}

var (
	// ErrAlreadyProcessing denies any command issued while a submission is
	// outstanding. Denied commands are not queued.
	ErrAlreadyProcessing = errors.New("booking submission already in progress")

	// ErrCompleted denies commands against a workflow that reached its
	// terminal step.
	ErrCompleted = errors.New("booking already confirmed")

	ErrNoPreviousStep = errors.New("no previous step to go back to")
)

// DeniedError is an advance request rejected by its guard. Errors carries
// the full accumulated validation message list.
type DeniedError struct {
	Reason string
	Errors []string
}

func (e *DeniedError) Error() string {
	return e.Reason
}

// Workflow is one booking attempt. It exclusively owns its BookingData
// aggregate; all mutation goes through the named operations below.
type Workflow struct {
	id        string
	offer     domain.FlightOffer
	submitter Submitter
	now       func() time.Time

	mu           sync.Mutex
	step         Step
	data         domain.BookingData
	processing   bool
	confirmation *domain.BookingConfirmation
	updatedAt    time.Time
}

// Snapshot is an observer's view of the workflow: a copy, safe to hand to a
// presentation layer.
type Snapshot struct {
	ID           string                      `json:"id"`
	Step         Step                        `json:"step"`
	Processing   bool                        `json:"processing"`
	Data         domain.BookingData          `json:"data"`
	Offer        domain.FlightOffer          `json:"offer"`
	Confirmation *domain.BookingConfirmation `json:"confirmation,omitempty"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

type Option func(*Workflow)

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// New creates a workflow on the flight-selected step with passengerCount
// empty passenger slots. The count is fixed for the life of the workflow.
func New(offer domain.FlightOffer, passengerCount int, submitter Submitter, opts ...Option) (*Workflow, error) {
	if passengerCount < 1 || passengerCount > 9 {
		return nil, fmt.Errorf("passenger count must be between 1 and 9, got %d", passengerCount)
	}
	if submitter == nil {
		return nil, errors.New("submitter is required")
	}

	w := &Workflow{
		id:        uuid.NewString(),
		offer:     offer,
		submitter: submitter,
		now:       time.Now,
		step:      StepFlightSelected,
	}
	for _, opt := range opts {
		opt(w)
	}

	passengers := make([]domain.Passenger, passengerCount)
	for i := range passengers {
		passengers[i] = domain.Passenger{
			ID:           uuid.NewString(),
			TravelerType: domain.TravelerAdult,
		}
	}
	w.data = domain.BookingData{Passengers: passengers}
	w.updatedAt = w.now()
	return w, nil
}

func (w *Workflow) ID() string {
	return w.id
}

func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *Workflow) snapshotLocked() Snapshot {
	data := w.data
	data.Passengers = make([]domain.Passenger, len(w.data.Passengers))
	copy(data.Passengers, w.data.Passengers)

	var conf *domain.BookingConfirmation
	if w.confirmation != nil {
		c := *w.confirmation
		c.Passengers = make([]domain.Passenger, len(w.confirmation.Passengers))
		copy(c.Passengers, w.confirmation.Passengers)
		conf = &c
	}

	return Snapshot{
		ID:           w.id,
		Step:         w.step,
		Processing:   w.processing,
		Data:         data,
		Offer:        w.offer,
		Confirmation: conf,
		UpdatedAt:    w.updatedAt,
	}
}

// UpdatePassenger replaces the passenger at index. The slot identifier is
// preserved. Updating the primary passenger also re-derives the aggregate's
// contact info from its email and phone, atomically with the replacement.
func (w *Workflow) UpdatePassenger(index int, p domain.Passenger) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutableLocked(); err != nil {
		return err
	}
	if index < 0 || index >= len(w.data.Passengers) {
		return fmt.Errorf("passenger index %d out of range [0,%d)", index, len(w.data.Passengers))
	}

	p.ID = w.data.Passengers[index].ID
	if index == 0 {
		w.data.Passengers[index] = p
		w.data.Contact = domain.ContactInfo{Email: p.Email, Phone: p.Phone}
	} else {
		// contact fields live on the primary passenger only
		p.Email = ""
		p.Phone = ""
		w.data.Passengers[index] = p
	}
	w.touchLocked()
	return nil
}

// UpdatePayment replaces the aggregate's payment details.
func (w *Workflow) UpdatePayment(p domain.PaymentDetails) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutableLocked(); err != nil {
		return err
	}
	w.data.Payment = p
	w.touchLocked()
	return nil
}

// UpdateSpecialRequests replaces the free-text special requests.
func (w *Workflow) UpdateSpecialRequests(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutableLocked(); err != nil {
		return err
	}
	w.data.SpecialRequests = text
	w.touchLocked()
	return nil
}

// Back moves to the immediate predecessor step. It never validates.
func (w *Workflow) Back() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.mutableLocked(); err != nil {
		return w.step, err
	}
	switch w.step {
	case StepPassengerDetails:
		w.step = StepFlightSelected
	case StepPayment:
		w.step = StepPassengerDetails
	default:
		return w.step, ErrNoPreviousStep
	}
	w.touchLocked()
	return w.step, nil
}

// Advance moves to the next step if the current step's guard passes. The
// payment step additionally runs the submission; on submission failure the
// workflow stays on payment with the aggregate intact so the user can retry.
func (w *Workflow) Advance(ctx context.Context) (Step, error) {
	w.mu.Lock()

	if w.processing {
		step := w.step
		w.mu.Unlock()
		return step, ErrAlreadyProcessing
	}

	switch w.step {
	case StepFlightSelected:
		w.step = StepPassengerDetails
		w.touchLocked()
		w.mu.Unlock()
		return StepPassengerDetails, nil

	case StepPassengerDetails:
		if errs := w.passengerGuardLocked(); len(errs) > 0 {
			w.mu.Unlock()
			return StepPassengerDetails, &DeniedError{Reason: "fill required passenger details", Errors: errs}
		}
		w.step = StepPayment
		w.touchLocked()
		w.mu.Unlock()
		return StepPayment, nil

	case StepPayment:
		if r := validate.Payment(w.data.Payment); !r.IsValid {
			w.mu.Unlock()
			return StepPayment, &DeniedError{Reason: "fill required payment details", Errors: r.Errors}
		}
		return w.runSubmission(ctx)

	default:
		w.mu.Unlock()
		return StepConfirmation, ErrCompleted
	}
}

// runSubmission runs the submission with the lock released so observers can
// still read snapshots; the processing flag denies all mutation meanwhile.
// Called with w.mu held, returns with it released.
func (w *Workflow) runSubmission(ctx context.Context) (Step, error) {
	w.processing = true
	data := w.data
	data.Passengers = make([]domain.Passenger, len(w.data.Passengers))
	copy(data.Passengers, w.data.Passengers)
	w.mu.Unlock()

	conf, err := w.submitter.Submit(ctx, data, w.offer)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.processing = false
	w.touchLocked()
	if err != nil {
		return StepPayment, fmt.Errorf("booking submission failed: %w", err)
	}
	w.confirmation = conf
	w.step = StepConfirmation
	return StepConfirmation, nil
}

func (w *Workflow) passengerGuardLocked() []string {
	var errs []string
	for i, p := range w.data.Passengers {
		if r := validate.Passenger(p); !r.IsValid {
			for _, e := range r.Errors {
				errs = append(errs, fmt.Sprintf("passenger %d: %s", i+1, e))
			}
		}
	}
	if r := validate.Required(w.data.Contact.Email); !r.IsValid {
		errs = append(errs, "contact email required")
	}
	if r := validate.Required(w.data.Contact.Phone); !r.IsValid {
		errs = append(errs, "contact phone required")
	}
	return errs
}

func (w *Workflow) mutableLocked() error {
	if w.processing {
		return ErrAlreadyProcessing
	}
	if w.step == StepConfirmation {
		return ErrCompleted
	}
	return nil
}

func (w *Workflow) touchLocked() {
	w.updatedAt = w.now()
}
