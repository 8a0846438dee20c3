package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func newTestReservation(t *testing.T, status ReservationStatus) Reservation {
	t.Helper()

	start, err := ParseTimeOfDay("14:00")
	require.NoError(t, err)

	r, err := NewReservation(
		uuid.New(), uuid.New(), uuid.New(),
		testNow.AddDate(0, 0, 1),
		start, 60, "",
		testNow,
	)
	require.NoError(t, err)

	r.Status = status
	return r
}

func TestNewReservation(t *testing.T) {
	shopID, memberID, treatmentID := uuid.New(), uuid.New(), uuid.New()
	start, _ := ParseTimeOfDay("14:00")

	r, err := NewReservation(shopID, memberID, treatmentID, testNow.AddDate(0, 0, 3), start, 60, "  first visit  ", testNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, ReservationStatusPending, r.Status)
	assert.Equal(t, "14:00", r.StartTime.String())
	assert.Equal(t, "15:00", r.EndTime.String())
	assert.Equal(t, "first visit", r.Memo)
	assert.Empty(t, r.RejectionReason)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.Equal(t, testNow, r.UpdatedAt)
}

func TestNewReservationPastDate(t *testing.T) {
	start, _ := ParseTimeOfDay("14:00")

	_, err := NewReservation(uuid.New(), uuid.New(), uuid.New(), testNow.AddDate(0, 0, -1), start, 60, "", testNow)
	assert.ErrorIs(t, err, ErrPastReservationDate)
}

func TestNewReservationTodayAllowed(t *testing.T) {
	start, _ := ParseTimeOfDay("14:00")

	_, err := NewReservation(uuid.New(), uuid.New(), uuid.New(), testNow, start, 60, "", testNow)
	assert.NoError(t, err)
}

// The past-date guard compares calendar days, never instants: today's
// date in UTC stays bookable when "now" sits in a western zone whose
// instant is already past UTC midnight.
func TestNewReservationTodayAcrossZones(t *testing.T) {
	start, _ := ParseTimeOfDay("14:00")
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	westNow := time.Date(2025, 6, 10, 8, 0, 0, 0, time.FixedZone("UTC-10", -10*3600))
	_, err := NewReservation(uuid.New(), uuid.New(), uuid.New(), date, start, 60, "", westNow)
	assert.NoError(t, err)

	eastNow := time.Date(2025, 6, 11, 1, 0, 0, 0, time.FixedZone("UTC+9", 9*3600))
	_, err = NewReservation(uuid.New(), uuid.New(), uuid.New(), date, start, 60, "", eastNow)
	assert.ErrorIs(t, err, ErrPastReservationDate)
}

func TestDateBefore(t *testing.T) {
	utc := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	westSameDay := time.Date(2025, 6, 10, 23, 0, 0, 0, time.FixedZone("UTC-10", -10*3600))

	assert.False(t, DateBefore(utc, westSameDay))
	assert.False(t, DateBefore(westSameDay, utc))
	assert.True(t, DateBefore(utc, utc.AddDate(0, 0, 1)))
	assert.False(t, DateBefore(utc, utc.AddDate(0, 0, -1)))
}

func TestNewReservationRejectsOverlongMemo(t *testing.T) {
	start, _ := ParseTimeOfDay("14:00")
	memo := make([]byte, 201)
	for i := range memo {
		memo[i] = 'x'
	}

	_, err := NewReservation(uuid.New(), uuid.New(), uuid.New(), testNow.AddDate(0, 0, 1), start, 60, string(memo), testNow)
	assert.ErrorIs(t, err, ErrInvalidMemo)
}

func TestStatusTransitionTable(t *testing.T) {
	all := []ReservationStatus{
		ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusRejected,
		ReservationStatusCancelled, ReservationStatusCompleted, ReservationStatusNoShow,
	}

	allowed := map[ReservationStatus][]ReservationStatus{
		ReservationStatusPending:   {ReservationStatusConfirmed, ReservationStatusRejected, ReservationStatusCancelled},
		ReservationStatusConfirmed: {ReservationStatusCompleted, ReservationStatusNoShow, ReservationStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionsUpdateTimestampAndStatus(t *testing.T) {
	later := testNow.Add(time.Hour)

	tests := []struct {
		name string
		from ReservationStatus
		call func(Reservation) (Reservation, error)
		want ReservationStatus
	}{
		{"confirm", ReservationStatusPending, func(r Reservation) (Reservation, error) { return r.Confirm(later) }, ReservationStatusConfirmed},
		{"cancel pending", ReservationStatusPending, func(r Reservation) (Reservation, error) { return r.Cancel(later) }, ReservationStatusCancelled},
		{"cancel confirmed", ReservationStatusConfirmed, func(r Reservation) (Reservation, error) { return r.Cancel(later) }, ReservationStatusCancelled},
		{"complete", ReservationStatusConfirmed, func(r Reservation) (Reservation, error) { return r.Complete(later) }, ReservationStatusCompleted},
		{"no show", ReservationStatusConfirmed, func(r Reservation) (Reservation, error) { return r.NoShow(later) }, ReservationStatusNoShow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := newTestReservation(t, tt.from)

			next, err := tt.call(original)
			require.NoError(t, err)

			assert.Equal(t, tt.want, next.Status)
			assert.Equal(t, later, next.UpdatedAt)
			// the original value is untouched
			assert.Equal(t, tt.from, original.Status)
			assert.Equal(t, testNow, original.UpdatedAt)
		})
	}
}

func TestIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from ReservationStatus
		call func(Reservation) (Reservation, error)
		to   ReservationStatus
	}{
		{"complete pending", ReservationStatusPending, func(r Reservation) (Reservation, error) { return r.Complete(testNow) }, ReservationStatusCompleted},
		{"confirm confirmed", ReservationStatusConfirmed, func(r Reservation) (Reservation, error) { return r.Confirm(testNow) }, ReservationStatusConfirmed},
		{"cancel cancelled", ReservationStatusCancelled, func(r Reservation) (Reservation, error) { return r.Cancel(testNow) }, ReservationStatusCancelled},
		{"confirm rejected", ReservationStatusRejected, func(r Reservation) (Reservation, error) { return r.Confirm(testNow) }, ReservationStatusConfirmed},
		{"no show completed", ReservationStatusCompleted, func(r Reservation) (Reservation, error) { return r.NoShow(testNow) }, ReservationStatusNoShow},
		{"reject no show", ReservationStatusNoShow, func(r Reservation) (Reservation, error) { return r.Reject("full", testNow) }, ReservationStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReservation(t, tt.from)

			_, err := tt.call(r)

			var transitionErr *InvalidStatusTransitionError
			require.True(t, errors.As(err, &transitionErr))
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
		})
	}
}

func TestRejectRecordsReason(t *testing.T) {
	r := newTestReservation(t, ReservationStatusPending)

	rejected, err := r.Reject("  fully booked that day  ", testNow.Add(time.Minute))
	require.NoError(t, err)

	assert.Equal(t, ReservationStatusRejected, rejected.Status)
	assert.Equal(t, "fully booked that day", rejected.RejectionReason)
}

func TestRejectRequiresReason(t *testing.T) {
	r := newTestReservation(t, ReservationStatusPending)

	_, err := r.Reject("   ", testNow)
	assert.ErrorIs(t, err, ErrInvalidRejectionReason)
}

func TestOverlapsHalfOpen(t *testing.T) {
	r := newTestReservation(t, ReservationStatusPending) // 14:00-15:00

	at := func(s string) TimeOfDay {
		v, err := ParseTimeOfDay(s)
		require.NoError(t, err)
		return v
	}

	assert.True(t, r.Overlaps(at("14:30"), at("15:30")))
	assert.True(t, r.Overlaps(at("13:30"), at("14:30")))
	assert.True(t, r.Overlaps(at("13:00"), at("16:00")))
	assert.False(t, r.Overlaps(at("15:00"), at("16:00")), "adjacent after must not overlap")
	assert.False(t, r.Overlaps(at("13:00"), at("14:00")), "adjacent before must not overlap")
}

func TestAuthorizationPredicates(t *testing.T) {
	r := newTestReservation(t, ReservationStatusPending)

	assert.True(t, r.IsOwnedByMember(r.MemberID))
	assert.False(t, r.IsOwnedByMember(uuid.New()))
	assert.True(t, r.BelongsToShop(r.ShopID))
	assert.False(t, r.BelongsToShop(uuid.New()))
}

func TestIdentityEquality(t *testing.T) {
	r := newTestReservation(t, ReservationStatusPending)

	confirmed, err := r.Confirm(testNow.Add(time.Minute))
	require.NoError(t, err)

	assert.True(t, r.Equal(confirmed), "diverged snapshots of one reservation are equal")
	assert.False(t, r.Equal(newTestReservation(t, ReservationStatusPending)))
}

func TestActiveStatuses(t *testing.T) {
	assert.True(t, ReservationStatusPending.IsActive())
	assert.True(t, ReservationStatusConfirmed.IsActive())
	assert.False(t, ReservationStatusRejected.IsActive())
	assert.False(t, ReservationStatusCancelled.IsActive())
	assert.False(t, ReservationStatusCompleted.IsActive())
	assert.False(t, ReservationStatusNoShow.IsActive())
}
