package usecase

import (
	"context"
	"testing"
	"time"

	"salon-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("empty day yields every slot", func(t *testing.T) {
		env := newTestEnv(t)

		// Wednesday 09:00-18:00 with a 60-minute treatment: nine slots.
		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, "09:00", resp.OpenTime)
		assert.Equal(t, "18:00", resp.CloseTime)
		require.Len(t, resp.Slots, 9)
		assert.Equal(t, "09:00", resp.Slots[0].StartTime)
		assert.Equal(t, "17:00", resp.Slots[8].StartTime)
		for _, slot := range resp.Slots {
			assert.True(t, slot.Available, slot.StartTime)
		}
	})

	t.Run("active booking blocks exactly its slot", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedReservation(t, "2025-06-11", "11:00", 60, entity.ReservationStatusConfirmed)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, resp.Slots, 9)
		for _, slot := range resp.Slots {
			if slot.StartTime == "11:00" {
				assert.False(t, slot.Available)
			} else {
				assert.True(t, slot.Available, slot.StartTime)
			}
		}
	})

	t.Run("terminal statuses do not block", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedReservation(t, "2025-06-11", "11:00", 60, entity.ReservationStatusCancelled)
		env.seedReservation(t, "2025-06-11", "13:00", 60, entity.ReservationStatusRejected)
		env.seedReservation(t, "2025-06-11", "15:00", 60, entity.ReservationStatusNoShow)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		for _, slot := range resp.Slots {
			assert.True(t, slot.Available, slot.StartTime)
		}
	})

	t.Run("offset booking blocks both slots it touches", func(t *testing.T) {
		env := newTestEnv(t)
		// 11:30-12:30 straddles the 11:00 and 12:00 candidates.
		env.seedReservation(t, "2025-06-11", "11:30", 60, entity.ReservationStatusPending)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		blocked := map[string]bool{"11:00": true, "12:00": true}
		for _, slot := range resp.Slots {
			assert.Equal(t, !blocked[slot.StartTime], slot.Available, slot.StartTime)
		}
	})

	t.Run("closed day has no slots", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Empty(t, resp.Slots)
		assert.Empty(t, resp.OpenTime)
	})

	t.Run("same day marks started slots unavailable", func(t *testing.T) {
		env := newTestEnv(t)
		env.clock.now = time.Date(2025, 6, 10, 12, 30, 0, 0, time.UTC)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, resp.Slots, 9)
		for _, slot := range resp.Slots {
			start, err := entity.ParseTimeOfDay(slot.StartTime)
			require.NoError(t, err)
			wantAvailable := start.After(entity.TimeOfDay(12*60 + 30))
			assert.Equal(t, wantAvailable, slot.Available, slot.StartTime)
		}
	})

	t.Run("today stays bookable west of UTC", func(t *testing.T) {
		env := newTestEnv(t)
		// 08:00 local on Tuesday the 10th; as an instant this is already
		// past UTC midnight of the 11th, which must not matter.
		env.clock.now = time.Date(2025, 6, 10, 8, 0, 0, 0, time.FixedZone("UTC-10", -10*3600))

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, resp.Slots, 9)
		for _, slot := range resp.Slots {
			assert.True(t, slot.Available, slot.StartTime)
		}
	})

	t.Run("past date has no available slots", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("unknown treatment", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.ownerID,
			time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, ErrTreatmentNotFound)
	})
}

func TestGetAvailableSlotsReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.seedReservation(t, "2025-06-11", "11:00", 60, entity.ReservationStatusConfirmed)

	day := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	first, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID, day)
	require.NoError(t, err)
	second, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID, day)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetAvailableSlotsShortTreatmentStep(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Saturday 10:00-14:00 with the 60-minute treatment: four slots.
	resp, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
		time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		starts = append(starts, slot.StartTime)
	}
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, starts)
}

func TestGetAvailableSlotsIntegrity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Two overlapping active rows cannot come from the booking flow.
	env.seedReservation(t, "2025-06-11", "10:00", 60, entity.ReservationStatusConfirmed)
	env.seedReservation(t, "2025-06-11", "10:30", 60, entity.ReservationStatusPending)

	_, err := env.svc.Availability.GetAvailableSlots(ctx, env.shopID, env.treatmentID,
		time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrReservationIntegrity)
}

func TestGetAvailableDates(t *testing.T) {
	ctx := context.Background()

	t.Run("skips closed and past days", func(t *testing.T) {
		env := newTestEnv(t)

		// Monday the 9th is past, Sunday the 15th is closed.
		resp, err := env.svc.Availability.GetAvailableDates(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, []string{
			"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14",
		}, resp.Dates)
	})

	t.Run("fully booked day is excluded", func(t *testing.T) {
		env := newTestEnv(t)

		// Saturday 10:00-14:00: four bookings fill the day.
		for _, start := range []string{"10:00", "11:00", "12:00", "13:00"} {
			env.seedReservation(t, "2025-06-14", start, 60, entity.ReservationStatusConfirmed)
		}

		resp, err := env.svc.Availability.GetAvailableDates(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, []string{"2025-06-13"}, resp.Dates)
	})

	t.Run("partially booked day still counts", func(t *testing.T) {
		env := newTestEnv(t)

		for _, start := range []string{"10:00", "11:00", "12:00"} {
			env.seedReservation(t, "2025-06-14", start, 60, entity.ReservationStatusConfirmed)
		}

		resp, err := env.svc.Availability.GetAvailableDates(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, []string{"2025-06-14"}, resp.Dates)
	})

	t.Run("same day with all slots started", func(t *testing.T) {
		env := newTestEnv(t)
		env.clock.now = time.Date(2025, 6, 10, 17, 30, 0, 0, time.UTC)

		resp, err := env.svc.Availability.GetAvailableDates(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Empty(t, resp.Dates)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		env := newTestEnv(t)

		resp, err := env.svc.Availability.GetAvailableDates(ctx, env.shopID, env.treatmentID,
			time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Empty(t, resp.Dates)
	})
}
