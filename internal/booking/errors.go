package booking

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSeatsRequested is returned by Book when the seat list is empty.
var ErrNoSeatsRequested = errors.New("no seats requested")

// ErrDuplicateSeats is returned by Book when the same seat code
// appears more than once in a request.
var ErrDuplicateSeats = errors.New("duplicate seat codes in request")

// SeatConflictError reports a booking that failed because one or more
// requested seats were no longer available.  No seats from the request
// are sold when this error is returned.
type SeatConflictError struct {
	Seats []string // the seats that could not be taken, in request order
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats no longer available: %s", strings.Join(e.Seats, ", "))
}
