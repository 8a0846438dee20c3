package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"

	"github.com/google/uuid"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeReservationRepo struct {
	mu    sync.Mutex
	store map[uuid.UUID]entity.Reservation

	// beforeUpdate runs once before the next guarded update, so tests
	// can race a concurrent status change against a transition.
	beforeUpdate func()
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{store: make(map[uuid.UUID]entity.Reservation)}
}

func (f *fakeReservationRepo) put(r entity.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[r.ID] = r
}

func (f *fakeReservationRepo) get(id uuid.UUID) (entity.Reservation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.store[id]
	return r, ok
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.store {
		if existing.ShopID == reservation.ShopID &&
			existing.ReservationDate.Equal(reservation.ReservationDate) &&
			existing.Status.IsActive() &&
			existing.Overlaps(reservation.StartTime, reservation.EndTime) {
			return repository.ErrOverlappingReservation
		}
	}

	f.store[reservation.ID] = *reservation
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, reservation *entity.Reservation, expectedFrom entity.ReservationStatus) (bool, error) {
	if f.beforeUpdate != nil {
		hook := f.beforeUpdate
		f.beforeUpdate = nil
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.store[reservation.ID]
	if !ok || current.Status != expectedFrom {
		return false, nil
	}

	f.store[reservation.ID] = *reservation
	return true, nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r, ok := f.get(id)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeReservationRepo) FindByMemberID(_ context.Context, memberID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	all := f.filter(func(r entity.Reservation) bool { return r.MemberID == memberID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeReservationRepo) CountByMemberID(_ context.Context, memberID uuid.UUID) (int64, error) {
	return int64(len(f.filter(func(r entity.Reservation) bool { return r.MemberID == memberID }))), nil
}

func (f *fakeReservationRepo) FindByShopID(_ context.Context, shopID uuid.UUID) ([]*entity.Reservation, error) {
	return f.filter(func(r entity.Reservation) bool { return r.ShopID == shopID }), nil
}

func (f *fakeReservationRepo) FindByShopIDAndDate(_ context.Context, shopID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	day := entity.DateOnly(date)
	return f.filter(func(r entity.Reservation) bool {
		return r.ShopID == shopID && r.ReservationDate.Equal(day)
	}), nil
}

func (f *fakeReservationRepo) ExistsOverlapping(_ context.Context, shopID uuid.UUID, date time.Time, start, end entity.TimeOfDay) (bool, error) {
	day := entity.DateOnly(date)
	matches := f.filter(func(r entity.Reservation) bool {
		return r.ShopID == shopID && r.ReservationDate.Equal(day) &&
			r.Status.IsActive() && r.Overlaps(start, end)
	})
	return len(matches) > 0, nil
}

func (f *fakeReservationRepo) filter(keep func(entity.Reservation) bool) []*entity.Reservation {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Reservation
	for _, r := range f.store {
		if keep(r) {
			copied := r
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReservationDate.Equal(out[j].ReservationDate) {
			return out[i].ReservationDate.Before(out[j].ReservationDate)
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

type fakeShopRepo struct {
	shops map[uuid.UUID]entity.Shop
}

func (f *fakeShopRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Shop, error) {
	shop, ok := f.shops[id]
	if !ok {
		return nil, nil
	}
	return &shop, nil
}

func (f *fakeShopRepo) FindOwnerIDByShopID(_ context.Context, shopID uuid.UUID) (uuid.UUID, bool, error) {
	shop, ok := f.shops[shopID]
	if !ok {
		return uuid.Nil, false, nil
	}
	return shop.OwnerID, true, nil
}

type fakeTreatmentRepo struct {
	treatments map[uuid.UUID]entity.Treatment
}

func (f *fakeTreatmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Treatment, error) {
	treatment, ok := f.treatments[id]
	if !ok {
		return nil, nil
	}
	return &treatment, nil
}

func (f *fakeTreatmentRepo) FindByShopID(_ context.Context, shopID uuid.UUID) ([]*entity.Treatment, error) {
	var out []*entity.Treatment
	for _, t := range f.treatments {
		if t.ShopID == shopID {
			copied := t
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]entity.Member
}

func (f *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Member, error) {
	member, ok := f.members[id]
	if !ok {
		return nil, nil
	}
	return &member, nil
}

type fakeDeviceTokenRepo struct {
	tokens map[uuid.UUID][]string
}

func (f *fakeDeviceTokenRepo) FindTokensByUserID(_ context.Context, userID uuid.UUID) ([]string, error) {
	return f.tokens[userID], nil
}

type pushMessage struct {
	token string
	title string
	body  string
}

// recordingSender captures deliveries so tests can wait for the
// asynchronous notification goroutine.
type recordingSender struct {
	messages chan pushMessage
}

func newRecordingSender() *recordingSender {
	return &recordingSender{messages: make(chan pushMessage, 8)}
}

func (r *recordingSender) Send(_ context.Context, token, title, body string, _ map[string]string) error {
	r.messages <- pushMessage{token: token, title: title, body: body}
	return nil
}

func (r *recordingSender) wait(t *testing.T) pushMessage {
	t.Helper()
	select {
	case msg := <-r.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no push delivered")
		return pushMessage{}
	}
}
