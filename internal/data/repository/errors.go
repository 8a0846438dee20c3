package repository

import "errors"

// ErrOverlappingReservation signals that an insert lost the race (or the
// plain precondition check) against an existing active reservation for
// the same shop, date and time range.
var ErrOverlappingReservation = errors.New("overlapping active reservation exists")
