package engine

import (
	"errors"

	"github.com/tartampluch/go-age/internal/config"
)

// Error kinds. A FieldError unwraps to exactly one of them.
var (
	ErrMissingOrNonNumeric = errors.New(config.ErrNonNumeric)
	ErrInvalidRange        = errors.New(config.ErrOutOfRange)
	ErrInvalidForMonth     = errors.New(config.ErrDayForMonth)
	ErrInvalidDate         = errors.New(config.ErrDateNotReal)
	ErrFutureDate          = errors.New(config.ErrDateFuture)

	// ErrFormInvalid is returned by Submit when at least one field failed validation.
	ErrFormInvalid = errors.New(config.ErrFormInvalid)
)

// FieldError is a field-local, user-visible failure.
type FieldError struct {
	Field   Field
	Kind    error
	Message string

	// Bound is the upper limit quoted by the message, when there is one
	// (days in the month, or the current year).
	Bound int
}

func (e *FieldError) Error() string {
	return e.Field.String() + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}
