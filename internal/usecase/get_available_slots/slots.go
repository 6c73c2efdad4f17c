package get_available_slots

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// generateStartTimes генерирует доступные времена начала внутри рабочего окна.
// Кандидаты идут с фиксированным шагом domain.SlotStepMinutes от открытия;
// конец слота определяется длительностью услуги, а не шагом, поэтому конец
// может попадать между кандидатами - это нормально.
func generateStartTimes(
	windowOpen time.Time,
	windowClose time.Time,
	durationMinutes int,
	existing []*domain.Booking,
) []string {
	step := domain.SlotStepMinutes * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	times := make([]string, 0)

	for cur := windowOpen; ; cur = cur.Add(step) {
		slotEnd := cur.Add(duration)

		// Слот не должен выходить за время закрытия (перенос на следующий день не допускается)
		if slotEnd.After(windowClose) {
			break
		}

		if !hasConflict(cur, slotEnd, existing) {
			times = append(times, cur.Format(domain.TimeFormat))
		}
	}

	return times
}

// hasConflict проверяет пересечение слота [start, end) с существующими бронированиями.
// Используется полуоткрытая семантика: интервалы пересекаются, только если
// start < other.end И end > other.start. Слоты, граничащие друг с другом
// (один заканчивается ровно там, где начинается другой), НЕ конфликтуют.
//
// Примеры:
// - Слот 09:30-10:00, бронирование 10:00-10:30 → НЕТ конфликта (граничат)
// - Слот 10:00-10:30, бронирование 10:00-10:30 → ЕСТЬ конфликт
func hasConflict(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		// Отменённые бронирования не занимают слот
		if b.IsCancelled() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
