package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusRejected  ReservationStatus = "REJECTED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusNoShow    ReservationStatus = "NO_SHOW"
)

// CanTransitionTo implements the lifecycle table. REJECTED, CANCELLED,
// COMPLETED and NO_SHOW are terminal.
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusPending:
		return target == ReservationStatusConfirmed ||
			target == ReservationStatusRejected ||
			target == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return target == ReservationStatusCompleted ||
			target == ReservationStatusNoShow ||
			target == ReservationStatusCancelled
	default:
		return false
	}
}

func (s ReservationStatus) IsTerminal() bool {
	return s != ReservationStatusPending && s != ReservationStatusConfirmed
}

// IsActive reports whether the status occupies its time slot. Only
// active reservations participate in overlap checks.
func (s ReservationStatus) IsActive() bool {
	return s == ReservationStatusPending || s == ReservationStatusConfirmed
}

const maxMemoLength = 200

// NormalizeMemo trims and validates an optional member memo. An empty
// input means "no memo" and normalizes to "".
func NormalizeMemo(memo string) (string, error) {
	trimmed := strings.TrimSpace(memo)
	if trimmed == "" {
		return "", nil
	}
	if len([]rune(trimmed)) > maxMemoLength {
		return "", fmt.Errorf("%w: got %d characters", ErrInvalidMemo, len([]rune(trimmed)))
	}
	return trimmed, nil
}

// NormalizeRejectionReason trims and validates a rejection reason,
// which is mandatory when rejecting.
func NormalizeRejectionReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" || len([]rune(trimmed)) > maxMemoLength {
		return "", ErrInvalidRejectionReason
	}
	return trimmed, nil
}

// Reservation is the aggregate root of the booking lifecycle. Values are
// immutable; every transition returns a fresh copy so callers persist
// exactly what they validated.
type Reservation struct {
	ID              uuid.UUID         `db:"id"`
	ShopID          uuid.UUID         `db:"shop_id"`
	MemberID        uuid.UUID         `db:"member_id"`
	TreatmentID     uuid.UUID         `db:"treatment_id"`
	ReservationDate time.Time         `db:"reservation_date"`
	StartTime       TimeOfDay         `db:"start_time"`
	EndTime         TimeOfDay         `db:"end_time"`
	Status          ReservationStatus `db:"status"`
	Memo            string            `db:"memo"`
	RejectionReason string            `db:"rejection_reason"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// NewReservation is the only constructor of a PENDING reservation.
// The end time is derived from the treatment duration and never set
// independently. The date must not be earlier than today.
func NewReservation(
	shopID, memberID, treatmentID uuid.UUID,
	date time.Time,
	start TimeOfDay,
	durationMinutes int,
	memo string,
	now time.Time,
) (Reservation, error) {
	if DateBefore(date, now) {
		return Reservation{}, fmt.Errorf("%w: %s", ErrPastReservationDate, date.Format(time.DateOnly))
	}

	end := start.AddMinutes(durationMinutes)
	if !start.Before(end) {
		return Reservation{}, ErrInvalidTimeRange
	}

	normalizedMemo, err := NormalizeMemo(memo)
	if err != nil {
		return Reservation{}, err
	}

	return Reservation{
		ID:              uuid.New(),
		ShopID:          shopID,
		MemberID:        memberID,
		TreatmentID:     treatmentID,
		ReservationDate: truncateToDate(date),
		StartTime:       start,
		EndTime:         end,
		Status:          ReservationStatusPending,
		Memo:            normalizedMemo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Confirm moves PENDING -> CONFIRMED.
func (r Reservation) Confirm(now time.Time) (Reservation, error) {
	return r.transition(ReservationStatusConfirmed, now)
}

// Reject moves PENDING -> REJECTED and records the owner's reason.
func (r Reservation) Reject(reason string, now time.Time) (Reservation, error) {
	normalized, err := NormalizeRejectionReason(reason)
	if err != nil {
		return Reservation{}, err
	}

	rejected, err := r.transition(ReservationStatusRejected, now)
	if err != nil {
		return Reservation{}, err
	}

	rejected.RejectionReason = normalized
	return rejected, nil
}

// Cancel is allowed from PENDING or CONFIRMED.
func (r Reservation) Cancel(now time.Time) (Reservation, error) {
	return r.transition(ReservationStatusCancelled, now)
}

// Complete moves CONFIRMED -> COMPLETED.
func (r Reservation) Complete(now time.Time) (Reservation, error) {
	return r.transition(ReservationStatusCompleted, now)
}

// NoShow moves CONFIRMED -> NO_SHOW.
func (r Reservation) NoShow(now time.Time) (Reservation, error) {
	return r.transition(ReservationStatusNoShow, now)
}

func (r Reservation) transition(target ReservationStatus, now time.Time) (Reservation, error) {
	if !r.Status.CanTransitionTo(target) {
		return Reservation{}, &InvalidStatusTransitionError{From: r.Status, To: target}
	}

	next := r
	next.Status = target
	next.UpdatedAt = now
	return next, nil
}

// IsOwnedByMember and BelongsToShop are authorization predicates for
// the application services; the entity itself never authorizes.

func (r Reservation) IsOwnedByMember(memberID uuid.UUID) bool {
	return r.MemberID == memberID
}

func (r Reservation) BelongsToShop(shopID uuid.UUID) bool {
	return r.ShopID == shopID
}

func (r Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// Overlaps checks the half-open interval intersection [s1,e1) x [s2,e2).
// A reservation ending exactly when another starts does not overlap.
func (r Reservation) Overlaps(start, end TimeOfDay) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}

// Equal compares by identity only. Two snapshots of the same reservation
// are the same reservation even when their fields diverge.
func (r Reservation) Equal(other Reservation) bool {
	return r.ID == other.ID
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate reports whether two timestamps fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateBefore reports whether a's calendar day falls before b's.
// Reservation dates are naive: only the year/month/day components are
// compared, never the instants, so the locations of a and b don't matter.
func DateBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

// DateOnly normalizes a timestamp to midnight, the canonical form of
// a reservation date.
func DateOnly(t time.Time) time.Time {
	return truncateToDate(t)
}
