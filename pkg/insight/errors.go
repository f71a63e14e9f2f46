package insight

import "github.com/pkg/errors"

var (
	// ErrDivisionByZero is returned when a growth ratio has no defined value,
	// because there is no history or only a single interval of it.
	ErrDivisionByZero = errors.New("division by zero")

	ErrInvalidArgument = errors.New("invalid argument")
)
