package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Closed marks a weekday without an operating window.
const Closed = "closed"

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true, "sunday": true,
}

// OperatingHours maps lowercase weekday names to "HH:MM-HH:MM" windows
// or the closed marker. Days missing from the map are treated as closed.
type OperatingHours map[string]string

// NewOperatingHours validates the raw schedule mapping.
func NewOperatingHours(schedule map[string]string) (OperatingHours, error) {
	if len(schedule) == 0 {
		return nil, fmt.Errorf("%w: schedule is empty", ErrInvalidOperatingHours)
	}

	hours := make(OperatingHours, len(schedule))
	for day, window := range schedule {
		key := strings.ToLower(day)
		if !validDays[key] {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidOperatingHours, day)
		}

		if window != Closed {
			open, closeTime, err := parseWindow(window)
			if err != nil {
				return nil, err
			}
			if !open.Before(closeTime) {
				return nil, fmt.Errorf("%w: window %q opens after it closes", ErrInvalidOperatingHours, window)
			}
		}

		hours[key] = window
	}

	return hours, nil
}

// WindowFor resolves the open/close window for a weekday. The second
// return value is false when the shop is closed that day.
func (h OperatingHours) WindowFor(day time.Weekday) (TimeOfDay, TimeOfDay, bool, error) {
	window, ok := h[weekdayKeys[day]]
	if !ok || window == Closed {
		return 0, 0, false, nil
	}

	open, closeTime, err := parseWindow(window)
	if err != nil {
		return 0, 0, false, err
	}

	return open, closeTime, true, nil
}

func parseWindow(window string) (TimeOfDay, TimeOfDay, error) {
	parts := strings.Split(window, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: window %q is not HH:MM-HH:MM", ErrInvalidOperatingHours, window)
	}

	open, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window %q", ErrInvalidOperatingHours, window)
	}

	closeTime, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: window %q", ErrInvalidOperatingHours, window)
	}

	return open, closeTime, nil
}

// Shop is a read-only collaborator of the reservation engine; shop
// management lives outside this service.
type Shop struct {
	Base
	OwnerID        uuid.UUID      `db:"owner_id"`
	Name           string         `db:"name"`
	PhoneNumber    string         `db:"phone_number"`
	Address        string         `db:"address"`
	OperatingHours OperatingHours `db:"operating_hours"`
}
