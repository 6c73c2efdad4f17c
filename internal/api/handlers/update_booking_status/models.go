package update_booking_status

// Request тело запроса на смену статуса
type Request struct {
	Status string `json:"status"`
}

// Response тело ответа со сменённым статусом
type Response struct {
	BookingID string `json:"booking_id"`
	Previous  string `json:"previous"`
	Status    string `json:"status"`
}
