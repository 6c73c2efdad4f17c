package get_available_slots

import "time"

// Request модель запроса на получение доступных слотов
type Request struct {
	StoreID      int64     // ID магазина
	ServiceID    int64     // ID услуги
	Date         time.Time // Дата (без времени, в локали магазина)
	ConsultantID *int64    // Опциональный фильтр по консультанту
}

// Response модель ответа со списком доступных времён начала
type Response struct {
	StoreID      int64
	ServiceID    int64
	Date         time.Time
	ConsultantID *int64
	Times        []string // Времена начала "HH:MM" в хронологическом порядке
}
