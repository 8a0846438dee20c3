package adaptor

import (
	"salon-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation  *ReservationHandler
	Availability *AvailabilityHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Reservation:  NewReservationHandler(service.Reservation, log),
		Availability: NewAvailabilityHandler(service.Availability, log),
	}
}
