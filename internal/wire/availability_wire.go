package wire

import (
	"salon-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAvailability(r chi.Router, handler *adaptor.AvailabilityHandler) {
	// Availability is browsed before signing in, so both routes are public.

	// GET /api/shops/{shopId}/treatments/{treatmentId}/available-dates
	r.Get("/api/shops/{shopId}/treatments/{treatmentId}/available-dates", handler.GetAvailableDates)

	// GET /api/shops/{shopId}/treatments/{treatmentId}/available-slots
	r.Get("/api/shops/{shopId}/treatments/{treatmentId}/available-slots", handler.GetAvailableSlots)
}
