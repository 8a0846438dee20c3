package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/pkg/push"
	"salon-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, memberID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetReservation(ctx context.Context, actorID uuid.UUID, reservationID uuid.UUID) (*response.ReservationResponse, error)
	ListMemberReservations(ctx context.Context, memberID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	ListShopReservations(ctx context.Context, ownerID, shopID uuid.UUID) ([]response.ReservationResponse, error)
	ConfirmReservation(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error)
	RejectReservation(ctx context.Context, ownerID, reservationID uuid.UUID, req *request.RejectReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, actorID, reservationID uuid.UUID) (*response.ReservationResponse, error)
	CompleteReservation(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error)
	MarkNoShow(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo  *repository.Repository
	push  push.Sender
	clock utils.Clock
	log   *zap.Logger
}

func NewReservationService(repo *repository.Repository, sender push.Sender, clock utils.Clock, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:  repo,
		push:  sender,
		clock: clock,
		log:   log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, memberID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, ErrShopNotFound
	}
	treatmentID, err := uuid.Parse(req.TreatmentID)
	if err != nil {
		return nil, ErrTreatmentNotFound
	}

	date, err := utils.ParseDate(req.ReservationDate)
	if err != nil {
		return nil, fmt.Errorf("parse reservation date %q: %w", req.ReservationDate, err)
	}
	start, err := entity.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if entity.DateBefore(date, now) {
		return nil, fmt.Errorf("%w: %s", entity.ErrPastReservationDate, req.ReservationDate)
	}

	shop, err := s.repo.Shop.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrShopNotFound
	}

	treatment, err := s.repo.Treatment.FindByID(ctx, treatmentID)
	if err != nil {
		return nil, err
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	if treatment.ShopID != shopID {
		return nil, ErrTreatmentNotInShop
	}

	end := start.AddMinutes(treatment.DurationMinutes)

	open, closeTime, isOpen, err := shop.OperatingHours.WindowFor(date.Weekday())
	if err != nil {
		return nil, err
	}
	if !isOpen || start.Before(open) || end.After(closeTime) {
		return nil, ErrOutsideOperatingHours
	}

	taken, err := s.repo.Reservation.ExistsOverlapping(ctx, shopID, date, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, s.conflictError(shopID, date, start, end)
	}

	memo := ""
	if req.Memo != nil {
		memo = *req.Memo
	}

	reservation, err := entity.NewReservation(shopID, memberID, treatmentID, date, start, treatment.DurationMinutes, memo, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Reservation.Create(ctx, &reservation); err != nil {
		if errors.Is(err, repository.ErrOverlappingReservation) {
			return nil, s.conflictError(shopID, date, start, end)
		}
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("shop_id", shopID.String()),
		zap.String("member_id", memberID.String()),
	)

	s.notifyCreated(shop.OwnerID, treatment.Name, &reservation)

	resp := response.ReservationToResponse(&reservation)
	return &resp, nil
}

func (s *reservationService) GetReservation(ctx context.Context, actorID uuid.UUID, reservationID uuid.UUID) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.IsOwnedByMember(actorID) {
		if err := s.authorizeOwner(ctx, actorID, reservation); err != nil {
			return nil, err
		}
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) ListMemberReservations(ctx context.Context, memberID uuid.UUID, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	reservations, err := s.repo.Reservation.FindByMemberID(ctx, memberID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Reservation.CountByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.ReservationsToResponse(reservations), page.Page, page.Limit(), total), nil
}

func (s *reservationService) ListShopReservations(ctx context.Context, ownerID, shopID uuid.UUID) ([]response.ReservationResponse, error) {
	shopOwnerID, found, err := s.repo.Shop.FindOwnerIDByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrShopNotFound
	}
	if shopOwnerID != ownerID {
		return nil, ErrUnauthorizedReservationAccess
	}

	reservations, err := s.repo.Reservation.FindByShopID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) ConfirmReservation(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error) {
	return s.ownerTransition(ctx, ownerID, reservationID, "Reservation confirmed",
		func(r entity.Reservation, now time.Time) (entity.Reservation, error) {
			return r.Confirm(now)
		})
}

func (s *reservationService) RejectReservation(ctx context.Context, ownerID, reservationID uuid.UUID, req *request.RejectReservationRequest) (*response.ReservationResponse, error) {
	return s.ownerTransition(ctx, ownerID, reservationID, "Reservation rejected",
		func(r entity.Reservation, now time.Time) (entity.Reservation, error) {
			return r.Reject(req.Reason, now)
		})
}

// CancelReservation is allowed to the booking member and, for CONFIRMED
// bookings the shop can no longer honor, the shop's owner.
func (s *reservationService) CancelReservation(ctx context.Context, actorID, reservationID uuid.UUID) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	notifyTarget := reservation.MemberID
	if reservation.IsOwnedByMember(actorID) {
		ownerID, found, err := s.repo.Shop.FindOwnerIDByShopID(ctx, reservation.ShopID)
		if err != nil {
			return nil, err
		}
		if found {
			notifyTarget = ownerID
		}
	} else if err := s.authorizeOwner(ctx, actorID, reservation); err != nil {
		return nil, err
	}

	updated, err := s.applyTransition(ctx, reservationID,
		func(r entity.Reservation, now time.Time) (entity.Reservation, error) {
			return r.Cancel(now)
		})
	if err != nil {
		return nil, err
	}

	s.notifyAsync(notifyTarget, "Reservation cancelled",
		fmt.Sprintf("Reservation on %s at %s was cancelled",
			updated.ReservationDate.Format(time.DateOnly), updated.StartTime.String()),
		updated)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) CompleteReservation(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error) {
	return s.ownerTransition(ctx, ownerID, reservationID, "Visit completed",
		func(r entity.Reservation, now time.Time) (entity.Reservation, error) {
			return r.Complete(now)
		})
}

func (s *reservationService) MarkNoShow(ctx context.Context, ownerID, reservationID uuid.UUID) (*response.ReservationResponse, error) {
	return s.ownerTransition(ctx, ownerID, reservationID, "Marked as no-show",
		func(r entity.Reservation, now time.Time) (entity.Reservation, error) {
			return r.NoShow(now)
		})
}

func (s *reservationService) ownerTransition(
	ctx context.Context,
	ownerID, reservationID uuid.UUID,
	notifyTitle string,
	apply func(entity.Reservation, time.Time) (entity.Reservation, error),
) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeOwner(ctx, ownerID, reservation); err != nil {
		return nil, err
	}

	updated, err := s.applyTransition(ctx, reservationID, apply)
	if err != nil {
		return nil, err
	}

	s.notifyAsync(updated.MemberID, notifyTitle,
		fmt.Sprintf("Reservation on %s at %s",
			updated.ReservationDate.Format(time.DateOnly), updated.StartTime.String()),
		updated)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

// applyTransition runs a lifecycle transition with a status-guarded
// write. When the guarded update reports a stale read it re-reads and
// re-validates against the fresh status, so a transition that lost the
// race surfaces the transition error instead of silently overwriting.
func (s *reservationService) applyTransition(
	ctx context.Context,
	reservationID uuid.UUID,
	apply func(entity.Reservation, time.Time) (entity.Reservation, error),
) (*entity.Reservation, error) {
	const maxAttempts = 3

	for attempt := 0; attempt < maxAttempts; attempt++ {
		current, err := s.loadReservation(ctx, reservationID)
		if err != nil {
			return nil, err
		}

		next, err := apply(*current, s.clock.Now())
		if err != nil {
			return nil, err
		}

		written, err := s.repo.Reservation.UpdateStatus(ctx, &next, current.Status)
		if err != nil {
			return nil, err
		}
		if written {
			s.log.Info("Reservation status changed",
				zap.String("reservation_id", next.ID.String()),
				zap.String("from", string(current.Status)),
				zap.String("to", string(next.Status)),
			)
			return &next, nil
		}

		s.log.Warn("Stale reservation status, re-reading",
			zap.String("reservation_id", reservationID.String()),
			zap.String("expected", string(current.Status)),
		)
	}

	return nil, fmt.Errorf("reservation %s: concurrent status updates, giving up", reservationID.String())
}

func (s *reservationService) loadReservation(ctx context.Context, reservationID uuid.UUID) (*entity.Reservation, error) {
	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, ErrReservationNotFound
	}
	return reservation, nil
}

func (s *reservationService) authorizeOwner(ctx context.Context, actorID uuid.UUID, reservation *entity.Reservation) error {
	ownerID, found, err := s.repo.Shop.FindOwnerIDByShopID(ctx, reservation.ShopID)
	if err != nil {
		return err
	}
	if !found || ownerID != actorID {
		return ErrUnauthorizedReservationAccess
	}
	return nil
}

func (s *reservationService) conflictError(shopID uuid.UUID, date time.Time, start, end entity.TimeOfDay) error {
	return &TimeConflictError{
		ShopID:    shopID,
		Date:      entity.DateOnly(date),
		StartTime: start,
		EndTime:   end,
	}
}

// notifyAsync delivers a push to every device of the target user.
// Failures are logged and never affect the reservation outcome.
func (s *reservationService) notifyAsync(userID uuid.UUID, title, body string, reservation *entity.Reservation) {
	snapshot := *reservation

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.deliver(ctx, userID, title, body, &snapshot)
	}()
}

// notifyCreated tells the shop owner about a fresh booking. The member
// is resolved inside the goroutine so the extra read stays off the
// booking path.
func (s *reservationService) notifyCreated(ownerID uuid.UUID, treatmentName string, reservation *entity.Reservation) {
	snapshot := *reservation

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		memberName := "A member"
		member, err := s.repo.Member.FindByID(ctx, snapshot.MemberID)
		if err != nil {
			s.log.Warn("Failed to resolve member for push",
				zap.Error(err),
				zap.String("member_id", snapshot.MemberID.String()),
			)
		} else if member != nil {
			memberName = member.Nickname
		}

		body := fmt.Sprintf("%s booked %s on %s at %s",
			memberName, treatmentName,
			snapshot.ReservationDate.Format(time.DateOnly), snapshot.StartTime.String())

		s.deliver(ctx, ownerID, "New reservation request", body, &snapshot)
	}()
}

func (s *reservationService) deliver(ctx context.Context, userID uuid.UUID, title, body string, reservation *entity.Reservation) {
	data := map[string]string{
		"reservation_id": reservation.ID.String(),
		"status":         string(reservation.Status),
	}

	tokens, err := s.repo.DeviceToken.FindTokensByUserID(ctx, userID)
	if err != nil {
		s.log.Warn("Failed to load device tokens for push",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return
	}

	for _, token := range tokens {
		if err := s.push.Send(ctx, token, title, body, data); err != nil {
			s.log.Warn("Failed to deliver push",
				zap.Error(err),
				zap.String("user_id", userID.String()),
			)
		}
	}
}
