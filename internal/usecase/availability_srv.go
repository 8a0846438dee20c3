package usecase

import (
	"context"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxAvailabilityRangeDays caps one available-dates query. Longer
// ranges are truncated rather than rejected.
const maxAvailabilityRangeDays = 92

type AvailabilityService interface {
	// GetAvailableDates lists the dates in [from, to] with at least one
	// free slot for the treatment. Past dates are never returned.
	GetAvailableDates(ctx context.Context, shopID, treatmentID uuid.UUID, from, to time.Time) (*response.AvailableDatesResponse, error)

	// GetAvailableSlots lists every candidate slot for one date, stepped
	// by the treatment duration, each marked available or not.
	GetAvailableSlots(ctx context.Context, shopID, treatmentID uuid.UUID, date time.Time) (*response.AvailableSlotsResponse, error)
}

type availabilityService struct {
	repo  *repository.Repository
	clock utils.Clock
	log   *zap.Logger
}

func NewAvailabilityService(repo *repository.Repository, clock utils.Clock, log *zap.Logger) AvailabilityService {
	return &availabilityService{
		repo:  repo,
		clock: clock,
		log:   log.With(zap.String("service", "availability")),
	}
}

func (s *availabilityService) GetAvailableDates(ctx context.Context, shopID, treatmentID uuid.UUID, from, to time.Time) (*response.AvailableDatesResponse, error) {
	shop, treatment, err := s.loadShopAndTreatment(ctx, shopID, treatmentID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	// Clamp to today, keeping the iteration in the caller's location so
	// date comparisons stay naive.
	start := entity.DateOnly(from)
	if entity.DateBefore(start, now) {
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, start.Location())
	}
	end := entity.DateOnly(to)
	if limit := start.AddDate(0, 0, maxAvailabilityRangeDays-1); end.After(limit) {
		end = limit
	}

	dates := make([]string, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		open, closeTime, isOpen, err := shop.OperatingHours.WindowFor(date.Weekday())
		if err != nil {
			return nil, err
		}
		if !isOpen {
			continue
		}

		active, err := s.loadActiveReservations(ctx, shopID, date)
		if err != nil {
			return nil, err
		}

		cutoff := s.sameDayCutoff(now, date)
		if hasFreeSlot(open, closeTime, treatment.DurationMinutes, active, cutoff) {
			dates = append(dates, date.Format(time.DateOnly))
		}
	}

	return &response.AvailableDatesResponse{Dates: dates}, nil
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, shopID, treatmentID uuid.UUID, date time.Time) (*response.AvailableSlotsResponse, error) {
	shop, treatment, err := s.loadShopAndTreatment(ctx, shopID, treatmentID)
	if err != nil {
		return nil, err
	}

	day := entity.DateOnly(date)
	resp := &response.AvailableSlotsResponse{
		Date:  day.Format(time.DateOnly),
		Slots: make([]response.SlotResponse, 0),
	}

	open, closeTime, isOpen, err := shop.OperatingHours.WindowFor(day.Weekday())
	if err != nil {
		return nil, err
	}
	if !isOpen {
		return resp, nil
	}

	resp.OpenTime = open.String()
	resp.CloseTime = closeTime.String()

	now := s.clock.Now()
	if entity.DateBefore(day, now) {
		return resp, nil
	}

	active, err := s.loadActiveReservations(ctx, shopID, day)
	if err != nil {
		return nil, err
	}

	cutoff := s.sameDayCutoff(now, day)
	for _, slot := range buildSlots(open, closeTime, treatment.DurationMinutes, active, cutoff) {
		resp.Slots = append(resp.Slots, response.SlotResponse{
			StartTime: slot.Start.String(),
			Available: slot.Available,
		})
	}

	return resp, nil
}

func (s *availabilityService) loadShopAndTreatment(ctx context.Context, shopID, treatmentID uuid.UUID) (*entity.Shop, *entity.Treatment, error) {
	shop, err := s.repo.Shop.FindByID(ctx, shopID)
	if err != nil {
		return nil, nil, err
	}
	if shop == nil {
		return nil, nil, ErrShopNotFound
	}

	treatment, err := s.repo.Treatment.FindByID(ctx, treatmentID)
	if err != nil {
		return nil, nil, err
	}
	if treatment == nil {
		return nil, nil, ErrTreatmentNotFound
	}
	if treatment.ShopID != shopID {
		return nil, nil, ErrTreatmentNotInShop
	}

	return shop, treatment, nil
}

// loadActiveReservations fetches the date's bookings, filters to the
// statuses that occupy slots, and verifies the stored set has no
// internal overlap.
func (s *availabilityService) loadActiveReservations(ctx context.Context, shopID uuid.UUID, date time.Time) ([]*entity.Reservation, error) {
	reservations, err := s.repo.Reservation.FindByShopIDAndDate(ctx, shopID, date)
	if err != nil {
		return nil, err
	}

	active := activeOnly(reservations)
	if a, b, found := findOverlappingActivePair(active); found {
		s.log.Error("Stored active reservations overlap",
			zap.String("shop_id", shopID.String()),
			zap.String("date", date.Format(time.DateOnly)),
			zap.String("reservation_a", a.ID.String()),
			zap.String("reservation_b", b.ID.String()),
		)
		return nil, ErrReservationIntegrity
	}

	return active, nil
}

// sameDayCutoff returns the current time of day when the requested date
// is today, so slots that already started are reported unavailable.
func (s *availabilityService) sameDayCutoff(now, date time.Time) *entity.TimeOfDay {
	if !entity.SameDate(now, date) {
		return nil
	}
	cutoff := entity.TimeOfDayFrom(now)
	return &cutoff
}
