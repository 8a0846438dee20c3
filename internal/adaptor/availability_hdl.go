package adaptor

import (
	"errors"
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	service usecase.AvailabilityService
	log     *zap.Logger
}

func NewAvailabilityHandler(service usecase.AvailabilityService, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log.With(zap.String("handler", "availability")),
	}
}

// GetAvailableDates handles GET /api/shops/{shopId}/treatments/{treatmentId}/available-dates?from=&to= (public)
func (h *AvailabilityHandler) GetAvailableDates(w http.ResponseWriter, r *http.Request) {
	shopID, treatmentID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := utils.ParseDate(query.Get("from"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := utils.ParseDate(query.Get("to"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid to date, expected YYYY-MM-DD", nil)
		return
	}

	dates, err := h.service.GetAvailableDates(r.Context(), shopID, treatmentID, from, to)
	if err != nil {
		h.handleServiceError(w, err, "get available dates")
		return
	}

	utils.ResponseSuccess(w, "success", dates)
}

// GetAvailableSlots handles GET /api/shops/{shopId}/treatments/{treatmentId}/available-slots?date= (public)
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	shopID, treatmentID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}

	date, err := utils.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), shopID, treatmentID, date)
	if err != nil {
		h.handleServiceError(w, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

func (h *AvailabilityHandler) pathIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	shopID, err := uuid.Parse(chi.URLParam(r, "shopId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid shopId", nil)
		return uuid.Nil, uuid.Nil, false
	}

	treatmentID, err := uuid.Parse(chi.URLParam(r, "treatmentId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid treatmentId", nil)
		return uuid.Nil, uuid.Nil, false
	}

	return shopID, treatmentID, true
}

func (h *AvailabilityHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrShopNotFound),
		errors.Is(err, usecase.ErrTreatmentNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrTreatmentNotInShop):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
