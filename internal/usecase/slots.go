package usecase

import "salon-booking/internal/data/entity"

// slot is one bookable candidate start within a shop's operating window.
type slot struct {
	Start     entity.TimeOfDay
	Available bool
}

// buildSlots enumerates candidate starts from open, stepped by the
// treatment duration, keeping only candidates whose full range fits
// before close. A candidate is unavailable when it overlaps any of the
// given active reservations, or when cutoff is non-nil and the start is
// not strictly after it.
func buildSlots(open, close entity.TimeOfDay, durationMinutes int, active []*entity.Reservation, cutoff *entity.TimeOfDay) []slot {
	slots := make([]slot, 0)
	if durationMinutes <= 0 {
		return slots
	}
	for start := open; ; start = start.AddMinutes(durationMinutes) {
		end := start.AddMinutes(durationMinutes)
		if end.After(close) {
			break
		}
		available := !overlapsAny(start, end, active)
		if available && cutoff != nil && !start.After(*cutoff) {
			available = false
		}
		slots = append(slots, slot{Start: start, Available: available})
	}
	return slots
}

func overlapsAny(start, end entity.TimeOfDay, active []*entity.Reservation) bool {
	for _, r := range active {
		if r.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func hasFreeSlot(open, close entity.TimeOfDay, durationMinutes int, active []*entity.Reservation, cutoff *entity.TimeOfDay) bool {
	for _, s := range buildSlots(open, close, durationMinutes, active, cutoff) {
		if s.Available {
			return true
		}
	}
	return false
}

func activeOnly(reservations []*entity.Reservation) []*entity.Reservation {
	active := make([]*entity.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status.IsActive() {
			active = append(active, r)
		}
	}
	return active
}

// findOverlappingActivePair scans the given active reservations for a
// stored overlap. Returns the offending pair when one exists.
func findOverlappingActivePair(active []*entity.Reservation) (*entity.Reservation, *entity.Reservation, bool) {
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			if active[i].Overlaps(active[j].StartTime, active[j].EndTime) {
				return active[i], active[j], true
			}
		}
	}
	return nil, nil, false
}
