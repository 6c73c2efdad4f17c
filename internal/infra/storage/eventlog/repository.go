package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository append-only репозиторий журнала событий.
// Записи никогда не изменяются; единственное удаление - retention purge.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал. ID и occurred_at проставляются здесь,
// если не заданы, чтобы вызывающий код не думал об этом.
func (r *Repository) Append(ctx context.Context, entry *domain.EventLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	query, args, err := psqlbuilder.Insert("event_log").
		Columns(
			"id",
			"booking_id",
			"store_id",
			"event_type",
			"actor_type",
			"actor_staff_id",
			"occurred_at",
			"metadata_json",
		).
		Values(
			entry.ID,
			entry.BookingID,
			entry.StoreID,
			entry.EventType,
			entry.ActorType,
			entry.ActorStaffID,
			entry.OccurredAt,
			entry.MetadataJSON,
		).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByBooking получает события бронирования в хронологическом порядке
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.EventLogEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "booking_id", "store_id", "event_type", "actor_type", "actor_staff_id", "occurred_at", "metadata_json",
	).
		From("event_log").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("occurred_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.EventLogEntry, 0)
	for rows.Next() {
		var entry domain.EventLogEntry
		var occurredAt sql.NullTime

		err := rows.Scan(
			&entry.ID,
			&entry.BookingID,
			&entry.StoreID,
			&entry.EventType,
			&entry.ActorType,
			&entry.ActorStaffID,
			&occurredAt,
			&entry.MetadataJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}

		entry.OccurredAt = occurredAt.Time
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// DeleteOccurredBefore удаляет события старше cutoff.
// Вызывается ТОЛЬКО retention purge.
func (r *Repository) DeleteOccurredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("event_log").
		Where(squirrel.Lt{"occurred_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOccurredBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOccurredBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOccurredBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}
