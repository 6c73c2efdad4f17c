package get_available_slots

// Response тело ответа со слотами
type Response struct {
	StoreID      int64    `json:"store_id"`
	ServiceID    int64    `json:"service_id"`
	Date         string   `json:"date"`
	ConsultantID *int64   `json:"consultant_id,omitempty"`
	Times        []string `json:"times"`
}
