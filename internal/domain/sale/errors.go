// internal/domain/sale/errors.go
package sale

import "errors"

// ErrEmptyCart is returned when payment is started with nothing rung up.
var ErrEmptyCart = errors.New("cart is empty")

// ErrInsufficientTender is returned when cash tendered is below the total.
// The transaction stays in AwaitingPayment with the tender input intact.
var ErrInsufficientTender = errors.New("amount tendered is less than the total due")

// ErrInvalidTransition is returned when an operation is requested in the
// wrong state (e.g. completing a sale that never entered payment).
var ErrInvalidTransition = errors.New("operation not valid in current transaction state")

// PersistenceError reports that the Sale Persistence Service rejected the
// sale or was unreachable. The service's own message is kept verbatim so
// the cashier sees what the backend said.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
