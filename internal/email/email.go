package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/bookingflow/internal/kafka"
)

// Sender is the notification sink for confirmation events. Delivery is
// stubbed out as a log line.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.ConfirmationEvent) error {
	s.logger.Info("sending booking confirmation email",
		zap.String("to", event.Email),
		zap.String("booking_reference", event.BookingReference),
		zap.String("confirmation_number", event.ConfirmationNumber),
		zap.String("flight_number", event.FlightNumber),
		zap.String("total_amount", event.TotalAmount))
	return nil
}
