package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
	chatstateRepo "github.com/bontle/BB-BookingService/internal/infra/storage/chatstate"
)

// DefaultTTL время жизни состояния диалога без активности
const DefaultTTL = 30 * time.Minute

// StateRepository интерфейс хранилища состояний диалогов
type StateRepository interface {
	Get(ctx context.Context, chatID string, now time.Time) (*domain.ConversationState, error)
	Upsert(ctx context.Context, state *domain.ConversationState) error
	Delete(ctx context.Context, chatID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Service состояние многошаговых диалогов чат-бота, ключ - внешний chat id.
// Каждое сохранение продлевает срок жизни; истёкшее состояние неотличимо
// от отсутствующего.
type Service struct {
	stateRepo StateRepository
	ttl       time.Duration
	logger    Logger
}

// NewService создает новый сервис состояний диалогов.
// Нулевой ttl заменяется на DefaultTTL.
func NewService(stateRepo StateRepository, ttl time.Duration, logger Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{stateRepo: stateRepo, ttl: ttl, logger: logger}
}

// Get возвращает живое состояние диалога
func (s *Service) Get(ctx context.Context, chatID string) (*domain.ConversationState, error) {
	if chatID == "" {
		return nil, fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}

	state, err := s.stateRepo.Get(ctx, chatID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, chatstateRepo.ErrStateNotFound) {
			return nil, fmt.Errorf("%w: chat=%s", ErrStateNotFound, chatID)
		}
		return nil, fmt.Errorf("%w: failed to get state: %v", ErrInternal, err)
	}

	return state, nil
}

// Save сохраняет шаг диалога и продлевает срок жизни состояния
func (s *Service) Save(ctx context.Context, chatID, step, payloadJSON string) error {
	if chatID == "" {
		return fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}
	if step == "" {
		return fmt.Errorf("%w: step is required", ErrInvalidInput)
	}

	state := &domain.ConversationState{
		ChatID:      chatID,
		Step:        step,
		PayloadJSON: payloadJSON,
		ExpiresAt:   time.Now().UTC().Add(s.ttl),
	}

	if err := s.stateRepo.Upsert(ctx, state); err != nil {
		return fmt.Errorf("%w: failed to save state: %v", ErrInternal, err)
	}

	return nil
}

// Clear удаляет состояние диалога (сценарий завершён или сброшен)
func (s *Service) Clear(ctx context.Context, chatID string) error {
	if chatID == "" {
		return fmt.Errorf("%w: chat id is required", ErrInvalidInput)
	}

	if err := s.stateRepo.Delete(ctx, chatID); err != nil {
		return fmt.Errorf("%w: failed to clear state: %v", ErrInternal, err)
	}

	return nil
}

// SweepExpired удаляет истёкшие состояния; запускается фоновой горутиной
func (s *Service) SweepExpired(ctx context.Context) (int64, error) {
	deleted, err := s.stateRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: failed to sweep expired states: %v", ErrInternal, err)
	}

	if deleted > 0 {
		s.logger.Info("ConversationSweep: removed %d expired states", deleted)
	}

	return deleted, nil
}
