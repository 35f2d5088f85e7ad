package ledger

import (
	"errors"
	"fmt"
)

// ErrTradeNotFound is returned when an edit or removal references a trade id
// that is no longer in the ledger.
var ErrTradeNotFound = errors.New("trade not found")

// ErrTickerNotFound is returned when a tracked trade names a ticker or coin
// that is not held in the portfolio.
var ErrTickerNotFound = errors.New("ticker not held")

// ValidationError reports a rejected trade input field. The ledger and the
// holdings snapshot are untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientQuantityError reports a sell quantity above the currently held
// quantity. Available includes the quantity freed by the trade being edited,
// when there is one.
type InsufficientQuantityError struct {
	Ticker    string
	Requested float64
	Available float64
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("insufficient quantity of %s: requested %g, available %g", e.Ticker, e.Requested, e.Available)
}
