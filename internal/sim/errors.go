package sim

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDiet      = errors.New("unknown diet category")
	ErrUnknownIndicator = errors.New("unknown indicator")
	ErrInvalidDiet      = errors.New("invalid diet distribution")
	ErrAdvancing        = errors.New("diet cannot change while the simulation is advancing")
	ErrMaxYear          = errors.New("simulation reached its final year")
	ErrHistoryOrder     = errors.New("history entries must be appended in year order")

	ErrZeroBaseline  = errors.New("baseline is zero")
	ErrZeroReference = errors.New("trend window starts at zero")
)

// DomainError reports a numeric-domain failure such as a division by zero.
type DomainError struct {
	Op  string
	Err error
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
