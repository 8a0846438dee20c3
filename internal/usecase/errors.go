package usecase

import (
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/google/uuid"
)

var (
	ErrShopNotFound                  = errors.New("beauty shop not found")
	ErrTreatmentNotFound             = errors.New("treatment not found")
	ErrTreatmentNotInShop            = errors.New("treatment does not belong to the shop")
	ErrReservationNotFound           = errors.New("reservation not found")
	ErrUnauthorizedReservationAccess = errors.New("actor is not allowed to access this reservation")
	ErrOutsideOperatingHours         = errors.New("requested time is outside the shop's operating hours")

	// ErrReservationIntegrity means two active reservations with
	// overlapping ranges were read back for one shop and date. The
	// database exclusion constraint should make this impossible; it is
	// never treated as an ordinary booking conflict.
	ErrReservationIntegrity = errors.New("overlapping active reservations stored for the same shop and date")
)

// TimeConflictError reports a booking attempt that overlaps an active
// reservation.
type TimeConflictError struct {
	ShopID    uuid.UUID
	Date      time.Time
	StartTime entity.TimeOfDay
	EndTime   entity.TimeOfDay
}

func (e *TimeConflictError) Error() string {
	return fmt.Sprintf("reservation time conflict at shop %s on %s between %s and %s",
		e.ShopID.String(), e.Date.Format(time.DateOnly), e.StartTime.String(), e.EndTime.String())
}
