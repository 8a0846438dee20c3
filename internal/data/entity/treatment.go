package entity

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	MinTreatmentDuration = 10
	MaxTreatmentDuration = 300
)

// ValidateTreatmentDuration bounds a treatment length in minutes.
func ValidateTreatmentDuration(minutes int) error {
	if minutes < MinTreatmentDuration || minutes > MaxTreatmentDuration {
		return fmt.Errorf("%w: got %d", ErrInvalidTreatmentDuration, minutes)
	}
	return nil
}

// Treatment is a read-only collaborator: a bookable service offered by
// a shop, whose duration fixes the reservation end time and the slot step.
type Treatment struct {
	Base
	ShopID          uuid.UUID `db:"shop_id"`
	Name            string    `db:"name"`
	Price           int64     `db:"price"`
	DurationMinutes int       `db:"duration_minutes"`
	Description     string    `db:"description"`
}
