package chatstate

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository хранилище состояния диалогов чат-бота.
// Состояние живёт в БД, а не в памяти процесса: многошаговый сценарий
// бронирования переживает рестарты и работает с несколькими инстансами.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория состояний диалогов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает состояние диалога. Истёкшее состояние считается отсутствующим.
func (r *Repository) Get(ctx context.Context, chatID string, now time.Time) (*domain.ConversationState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("chat_id", "step", "payload_json", "expires_at", "updated_at").
		From("chat_states").
		Where(squirrel.Eq{"chat_id": chatID}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var state domain.ConversationState
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&state.ChatID,
		&state.Step,
		&state.PayloadJSON,
		&state.ExpiresAt,
		&state.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan state: %v", ErrScanRow, err)
	}

	return &state, nil
}

// Upsert сохраняет состояние диалога, перезаписывая предыдущий шаг
func (r *Repository) Upsert(ctx context.Context, state *domain.ConversationState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("chat_states").
		Columns("chat_id", "step", "payload_json", "expires_at", "updated_at").
		Values(state.ChatID, state.Step, state.PayloadJSON, state.ExpiresAt, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (chat_id) DO UPDATE SET step = EXCLUDED.step, payload_json = EXCLUDED.payload_json, expires_at = EXCLUDED.expires_at, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет состояние диалога (завершение или сброс сценария)
func (r *Repository) Delete(ctx context.Context, chatID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("chat_states").
		Where(squirrel.Eq{"chat_id": chatID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет истёкшие состояния (фоновая уборка)
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("chat_states").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
