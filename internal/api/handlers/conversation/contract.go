package conversation

import (
	"context"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// ConversationService интерфейс сервиса состояний диалогов
type ConversationService interface {
	Get(ctx context.Context, chatID string) (*domain.ConversationState, error)
	Save(ctx context.Context, chatID, step, payloadJSON string) error
	Clear(ctx context.Context, chatID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
