// Package payment simulates a card payment gateway.
package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront/entity"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/sirupsen/logrus"
)

const DefaultDelay = 2 * time.Second

// Test cards with a fixed outcome.
const (
	CardApproved          = "4111111111111111"
	CardInsufficientFunds = "4242424242424242"
	CardExpired           = "4000000000000002"
)

var (
	ErrInvalidCardFormat = errors.New("invalid card number format")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCardExpired       = errors.New("card expired")
	ErrDeclinedByBank    = errors.New("transaction declined by bank")
)

var declineMessages = map[error]string{
	ErrInvalidCardFormat: "Invalid card number format",
	ErrInvalidCardNumber: "Invalid card number",
	ErrInsufficientFunds: "Insufficient funds",
	ErrCardExpired:       "Card expired",
	ErrDeclinedByBank:    "Transaction declined by bank",
}

// DeclineMessage returns the text shown to the customer for a payment error.
func DeclineMessage(err error) string {
	for sentinel, msg := range declineMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}

	return "Payment failed"
}

type Option func(*Simulator)

// WithDelay overrides the simulated network round-trip.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) {
		s.delay = d
	}
}

// WithSleep replaces time.Sleep, so tests can observe the simulated latency.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Simulator) {
		s.sleep = sleep
	}
}

type Simulator struct {
	outcome OutcomeSource
	delay   time.Duration
	sleep   func(time.Duration)

	lock       sync.Mutex
	processing bool
	lastError  string
}

func NewSimulator(outcome OutcomeSource, opts ...Option) *Simulator {
	s := &Simulator{
		outcome: outcome,
		delay:   DefaultDelay,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessPayment reports whether the payment went through. On failure the
// reason is available from LastError.
func (s *Simulator) ProcessPayment(ctx context.Context, details entity.PaymentDetails) bool {
	return s.Authorize(ctx, details) == nil
}

// Authorize runs the simulated payment and returns the decline reason, if
// any. The simulated delay is not interrupted by ctx.
func (s *Simulator) Authorize(ctx context.Context, details entity.PaymentDetails) (err error) {
	s.begin()
	defer func() {
		s.end(err)
	}()

	err = s.authorize(details)

	logger := log.FromContext(ctx).WithFields(logrus.Fields{
		"card":   maskCardNumber(details.CardNumber),
		"amount": details.Amount.StringFixed(2),
	})
	if err != nil {
		logger.WithError(err).Info("Payment declined")
	} else {
		logger.Info("Payment approved")
	}

	return err
}

func (s *Simulator) authorize(details entity.PaymentDetails) error {
	if !isCardNumberFormat(details.CardNumber) {
		return ErrInvalidCardFormat
	}

	if !ValidateCard(details.CardNumber) {
		return ErrInvalidCardNumber
	}

	s.sleep(s.delay)

	switch details.CardNumber {
	case CardApproved:
		return nil
	case CardInsufficientFunds:
		return ErrInsufficientFunds
	case CardExpired:
		return ErrCardExpired
	}

	if !s.outcome.Approve() {
		return ErrDeclinedByBank
	}

	return nil
}

func (s *Simulator) begin() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.processing = true
	s.lastError = ""
}

func (s *Simulator) end(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.processing = false
	if err != nil {
		s.lastError = DeclineMessage(err)
	}
}

func (s *Simulator) IsProcessing() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.processing
}

// LastError returns the display message of the most recent failed payment, or an
// empty string when it succeeded.
func (s *Simulator) LastError() string {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.lastError
}
