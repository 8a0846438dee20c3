package request

type CreateReservationRequest struct {
	ShopID          string  `json:"shop_id" validate:"required,uuid4"`
	TreatmentID     string  `json:"treatment_id" validate:"required,uuid4"`
	ReservationDate string  `json:"reservation_date" validate:"required,datetime=2006-01-02"`
	StartTime       string  `json:"start_time" validate:"required,datetime=15:04"`
	Memo            *string `json:"memo,omitempty" validate:"omitempty,max=200"`
}

type RejectReservationRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=200"`
}
