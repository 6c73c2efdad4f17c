package update_booking_status

import (
	"fmt"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if !domain.IsValidStatus(req.Target) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Target)
	}

	// SCHEDULED - только начальный статус, переход в него невозможен
	if req.Target == domain.StatusScheduled {
		return fmt.Errorf("%w: %q is not a valid transition target", ErrInvalidInput, req.Target)
	}

	return nil
}
