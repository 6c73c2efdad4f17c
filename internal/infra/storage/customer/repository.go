package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий клиентов чат-бота
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByChatID получает клиента по внешнему идентификатору чата
func (r *Repository) GetByChatID(ctx context.Context, chatID string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "telegram_chat_id", "display_first_name", "created_at").
		From("customers").
		Where(squirrel.Eq{"telegram_chat_id": chatID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByChatID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.TelegramChatID,
		&c.DisplayFirstName,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByChatID - scan customer: %v", ErrScanRow, err)
	}

	return &c, nil
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "telegram_chat_id", "display_first_name", "created_at").
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Customer
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.TelegramChatID,
		&c.DisplayFirstName,
		&c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return &c, nil
}

// CreateIfAbsent создает клиента по chat id, если его ещё нет, и возвращает запись.
// ON CONFLICT DO NOTHING + повторное чтение, чтобы параллельные первые сообщения
// из одного чата не падали.
func (r *Repository) CreateIfAbsent(ctx context.Context, chatID string, firstName *string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("telegram_chat_id", "display_first_name").
		Values(chatID, firstName).
		Suffix("ON CONFLICT (telegram_chat_id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByChatID(ctx, chatID)
}
