package response

import (
	"time"

	"salon-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID              string                   `json:"id"`
	ShopID          string                   `json:"shop_id"`
	MemberID        string                   `json:"member_id"`
	TreatmentID     string                   `json:"treatment_id"`
	ReservationDate string                   `json:"reservation_date"`
	StartTime       string                   `json:"start_time"`
	EndTime         string                   `json:"end_time"`
	Status          entity.ReservationStatus `json:"status"`
	Memo            string                   `json:"memo,omitempty"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func ReservationToResponse(reservation *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              reservation.ID.String(),
		ShopID:          reservation.ShopID.String(),
		MemberID:        reservation.MemberID.String(),
		TreatmentID:     reservation.TreatmentID.String(),
		ReservationDate: reservation.ReservationDate.Format(time.DateOnly),
		StartTime:       reservation.StartTime.String(),
		EndTime:         reservation.EndTime.String(),
		Status:          reservation.Status,
		Memo:            reservation.Memo,
		RejectionReason: reservation.RejectionReason,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		responses[i] = ReservationToResponse(reservation)
	}
	return responses
}
