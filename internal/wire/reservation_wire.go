package wire

import (
	"salon-booking/internal/adaptor"
	"salon-booking/internal/data/repository"
	"salon-booking/pkg/middleware"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	handler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// Member routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(utils.RoleMember, log))

		// POST /api/reservations - Book a treatment slot
		r.Post("/api/reservations", handler.CreateReservation)

		// GET /api/member/reservations - Member's booking history
		r.Get("/api/member/reservations", handler.ListMemberReservations)
	})

	// Routes open to any authenticated actor; the service decides who
	// may see or transition a given reservation.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// GET /api/reservations/{id} - Reservation detail
		r.Get("/api/reservations/{id}", handler.GetReservation)

		// PUT /api/reservations/{id}/cancel - Cancel (member or owner)
		r.Put("/api/reservations/{id}/cancel", handler.CancelReservation)
	})

	// Owner routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.RequireRole(utils.RoleOwner, log))

		// GET /api/shops/{shopId}/reservations - All bookings of a shop
		r.Get("/api/shops/{shopId}/reservations", handler.ListShopReservations)

		// PUT /api/reservations/{id}/confirm - Accept a pending booking
		r.Put("/api/reservations/{id}/confirm", handler.ConfirmReservation)

		// PUT /api/reservations/{id}/reject - Decline with a reason
		r.Put("/api/reservations/{id}/reject", handler.RejectReservation)

		// PUT /api/reservations/{id}/complete - Mark the visit done
		r.Put("/api/reservations/{id}/complete", handler.CompleteReservation)

		// PUT /api/reservations/{id}/no-show - Member did not arrive
		r.Put("/api/reservations/{id}/no-show", handler.MarkNoShow)
	})
}
