package create_booking

import (
	"fmt"
	"math/rand/v2"
)

// Количество попыток пересоздать бронирование при коллизии кода.
// Кодов 10000, коллизии редки, но при большой базе возможны.
const maxCodeAttempts = 5

// generateBookingCode генерирует человекочитаемый код бронирования "BO-NNNN".
// Уникальность обеспечивает констрейнт в БД, при коллизии транзакция
// повторяется с новым кодом.
func generateBookingCode() string {
	return fmt.Sprintf("BO-%04d", rand.IntN(10000))
}
