package create_booking

import (
	"fmt"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID <= 0 {
		return fmt.Errorf("%w: storeID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.ConsultantID != nil && *req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.StationID != nil && *req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.CustomerChatID == "" {
		return fmt.Errorf("%w: customer chat id is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start time is required", ErrInvalidInput)
	}

	switch req.Channel {
	case domain.ChannelTelegram, domain.ChannelConsole:
	default:
		return fmt.Errorf("%w: unknown source channel %q", ErrInvalidInput, req.Channel)
	}

	return nil
}
