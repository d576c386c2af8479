package checkout

import (
	"errors"
	"fmt"

	"storefront/payment"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidCustomer    = errors.New("customer first name, last name and email are required")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Message returns the text shown to the customer for an error returned by Run.
func Message(err error) string {
	var declined *DeclinedError
	var persistence *PersistenceError

	switch {
	case err == nil:
		return messageCompleted
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty"
	case errors.Is(err, ErrInvalidCustomer):
		return "First name, last name and email are required"
	case errors.Is(err, ErrCheckoutInProgress):
		return "A checkout is already in progress"
	case errors.As(err, &declined):
		return payment.DeclineMessage(declined.Err)
	case errors.As(err, &persistence):
		return messagePersistFailed
	}

	return "Checkout failed, please try again"
}

// DeclinedError is returned when the payment was refused. Its message is the
// one reported by the payment gateway.
type DeclinedError struct {
	Err error
}

func (e *DeclinedError) Error() string {
	return e.Err.Error()
}

func (e *DeclinedError) Unwrap() error {
	return e.Err
}

// PersistenceError is returned when the payment went through but some purchases
// could not be recorded.
type PersistenceError struct {
	OrderID string
	// Err joins the failure of every line that could not be recorded.
	Err error
	// CompensationErr is set when undoing the recorded lines failed too.
	CompensationErr error
}

func (e *PersistenceError) Error() string {
	msg := fmt.Sprintf("recording purchases of order %s: %v", e.OrderID, e.Err)
	if e.CompensationErr != nil {
		msg += fmt.Sprintf(" (compensation: %v)", e.CompensationErr)
	}

	return msg
}

func (e *PersistenceError) Unwrap() []error {
	if e.CompensationErr == nil {
		return []error{e.Err}
	}

	return []error{e.Err, e.CompensationErr}
}
