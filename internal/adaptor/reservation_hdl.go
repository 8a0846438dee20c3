package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"salon-booking/internal/data/entity"
	"salon-booking/internal/dto/request"
	"salon-booking/internal/dto/response"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations (member)
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	memberID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), memberID, &req)
	if err != nil {
		h.handleServiceError(w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// GetReservation handles GET /api/reservations/{id} (member or owner)
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	reservation, err := h.service.GetReservation(r.Context(), actorID, reservationID)
	if err != nil {
		h.handleServiceError(w, err, "get reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// ListMemberReservations handles GET /api/member/reservations (member)
func (h *ReservationHandler) ListMemberReservations(w http.ResponseWriter, r *http.Request) {
	memberID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reservations, err := h.service.ListMemberReservations(r.Context(), memberID, req)
	if err != nil {
		h.handleServiceError(w, err, "list member reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ListShopReservations handles GET /api/shops/{shopId}/reservations (owner)
func (h *ReservationHandler) ListShopReservations(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	shopID, ok := h.pathID(w, r, "shopId")
	if !ok {
		return
	}

	reservations, err := h.service.ListShopReservations(r.Context(), ownerID, shopID)
	if err != nil {
		h.handleServiceError(w, err, "list shop reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// ConfirmReservation handles PUT /api/reservations/{id}/confirm (owner)
func (h *ReservationHandler) ConfirmReservation(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, "confirm reservation", h.service.ConfirmReservation)
}

// RejectReservation handles PUT /api/reservations/{id}/reject (owner)
func (h *ReservationHandler) RejectReservation(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.RejectReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.RejectReservation(r.Context(), ownerID, reservationID, &req)
	if err != nil {
		h.handleServiceError(w, err, "reject reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// CancelReservation handles PUT /api/reservations/{id}/cancel (member or owner)
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, "cancel reservation", h.service.CancelReservation)
}

// CompleteReservation handles PUT /api/reservations/{id}/complete (owner)
func (h *ReservationHandler) CompleteReservation(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, "complete reservation", h.service.CompleteReservation)
}

// MarkNoShow handles PUT /api/reservations/{id}/no-show (owner)
func (h *ReservationHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, "mark no-show", h.service.MarkNoShow)
}

func (h *ReservationHandler) ownerTransition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	apply func(ctx context.Context, actorID, reservationID uuid.UUID) (*response.ReservationResponse, error),
) {
	actorID, ok := utils.GetActorIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reservationID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	reservation, err := apply(r.Context(), actorID, reservationID)
	if err != nil {
		h.handleServiceError(w, err, operation)
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

func (h *ReservationHandler) pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+param, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var (
		conflict      *usecase.TimeConflictError
		transitionErr *entity.InvalidStatusTransitionError
	)

	switch {
	case errors.Is(err, usecase.ErrReservationNotFound),
		errors.Is(err, usecase.ErrShopNotFound),
		errors.Is(err, usecase.ErrTreatmentNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &conflict):
		h.log.Warn(operation+" failed - time conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.As(err, &transitionErr):
		h.log.Warn(operation+" failed - illegal transition", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrUnauthorizedReservationAccess):
		h.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrTreatmentNotInShop),
		errors.Is(err, usecase.ErrOutsideOperatingHours),
		errors.Is(err, entity.ErrPastReservationDate),
		errors.Is(err, entity.ErrInvalidTimeOfDay),
		errors.Is(err, entity.ErrInvalidMemo),
		errors.Is(err, entity.ErrInvalidRejectionReason):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
