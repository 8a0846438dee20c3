package usecase

import (
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/push"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation  ReservationService
	Availability AvailabilityService
}

func NewService(repo *repository.Repository, sender push.Sender, clock utils.Clock, log *zap.Logger) *Service {
	return &Service{
		Reservation:  NewReservationService(repo, sender, clock, log),
		Availability: NewAvailabilityService(repo, clock, log),
	}
}
