package reschedule_booking

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == "" {
		return fmt.Errorf("%w: booking id is required", ErrInvalidInput)
	}

	if req.CustomerChatID == "" {
		return fmt.Errorf("%w: customer chat id is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	return nil
}
