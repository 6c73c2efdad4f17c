package create_booking

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	StoreID      int64
	ServiceID    int64
	ConsultantID *int64 // Опционально: конкретный консультант
	StationID    *int64 // Опционально: конкретная станция

	// Идентификация клиента по внешнему ключу чата.
	// Клиент создаётся при первом бронировании.
	CustomerChatID    string
	CustomerFirstName *string

	StartAt time.Time // Время начала, подтверждённое через get_available_slots
	Channel string    // domain.ChannelTelegram / domain.ChannelConsole
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}
