package response

type SlotResponse struct {
	StartTime string `json:"start_time"`
	Available bool   `json:"available"`
}

type AvailableSlotsResponse struct {
	Date      string         `json:"date"`
	OpenTime  string         `json:"open_time"`
	CloseTime string         `json:"close_time"`
	Slots     []SlotResponse `json:"slots"`
}

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}
