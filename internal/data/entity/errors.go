package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimeOfDay         = errors.New("invalid time of day, expected HH:MM")
	ErrInvalidTimeRange         = errors.New("start time must be before end time")
	ErrInvalidMemo              = errors.New("memo must be 1-200 characters")
	ErrInvalidRejectionReason   = errors.New("rejection reason must be 1-200 characters")
	ErrInvalidOperatingHours    = errors.New("invalid operating hours")
	ErrInvalidTreatmentDuration = errors.New("treatment duration must be 10-300 minutes")
	ErrPastReservationDate      = errors.New("reservation date is in the past")
)

// InvalidStatusTransitionError reports an attempt to move a reservation
// to a status not reachable from its current one.
type InvalidStatusTransitionError struct {
	From ReservationStatus
	To   ReservationStatus
}

func (e *InvalidStatusTransitionError) Error() string {
	return fmt.Sprintf("invalid reservation status transition from %s to %s", e.From, e.To)
}
