package conversation

// SaveRequest тело запроса сохранения шага диалога
type SaveRequest struct {
	Step    string `json:"step"`
	Payload string `json:"payload"`
}

// StateResponse состояние диалога в ответе
type StateResponse struct {
	ChatID    string `json:"chat_id"`
	Step      string `json:"step"`
	Payload   string `json:"payload"`
	ExpiresAt string `json:"expires_at"`
	UpdatedAt string `json:"updated_at"`
}
