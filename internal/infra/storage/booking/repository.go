package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"booking_code",
	"store_id",
	"station_id",
	"service_id",
	"consultant_id",
	"customer_id",
	"scheduled_start_at",
	"scheduled_end_at",
	"status",
	"source_channel",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её -
// создание всегда должно идти в сериализуемой транзакции вместе с повторной
// проверкой конфликтов слота.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"booking_code",
			"store_id",
			"station_id",
			"service_id",
			"consultant_id",
			"customer_id",
			"scheduled_start_at",
			"scheduled_end_at",
			"status",
			"source_channel",
		).
		Values(
			booking.ID,
			booking.BookingCode,
			booking.StoreID,
			booking.StationID,
			booking.ServiceID,
			booking.ConsultantID,
			booking.CustomerID,
			booking.ScheduledStartAt,
			booking.ScheduledEndAt,
			booking.Status,
			booking.SourceChannel,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		// 23505 - unique_violation (booking_code)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrCodeConflict
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// lockInTransaction добавляет FOR UPDATE, когда чтение идёт внутри транзакции:
// строка остаётся заблокированной до её конца, конкурентная транзакция
// ждёт и перечитывает уже зафиксированное состояние
func lockInTransaction(ctx context.Context, sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if dbmetrics.IsInTransaction(ctx) {
		return sb.Suffix("FOR UPDATE")
	}
	return sb
}

// GetByID получает бронирование по ID.
// Внутри транзакции смены статуса строка блокируется, чтобы два
// параллельных перехода не прочитали один и тот же исходный статус.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	query, args, err := lockInTransaction(ctx, selectBuilder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByCode получает бронирование по человекочитаемому коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanBooking(executor.QueryRowContext(ctx, query, args...), "GetByCode")
}

// GetByStoreWithFilter получает бронирования магазина с фильтрацией.
// Фильтр по интервалу намеренно широкий: берём все бронирования, чей интервал
// ПЕРЕСЕКАЕТ [From, To), а не только те, что начинаются внутри окна. Так
// бронирование, начавшееся до открытия, но заканчивающееся внутри окна,
// тоже попадёт в проверку конфликтов.
//
// В транзакции для конкретного окна добавляется FOR UPDATE - блокировка строк
// для сценария check-and-book.
func (r *Repository) GetByStoreWithFilter(ctx context.Context, filter domain.StoreBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"store_id": filter.StoreID})

	// Фильтрация по консультанту (если указан)
	if filter.ConsultantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consultant_id": *filter.ConsultantID})
	}

	// Пересечение с интервалом [From, To) - полуоткрытая семантика
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"scheduled_end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start_at": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start_at ASC")

	// Блокируем строки внутри транзакции создания бронирования
	if filter.From != nil && filter.To != nil {
		selectBuilder = lockInTransaction(ctx, selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStoreWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByCustomerID получает бронирования клиента (история чат-бота)
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("scheduled_start_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования и updated_at
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateSchedule переносит бронирование на новый интервал
func (r *Repository) UpdateSchedule(ctx context.Context, id string, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("scheduled_start_at", startAt).
		Set("scheduled_end_at", endAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AssignConsultant назначает консультанта на бронирование
func (r *Repository) AssignConsultant(ctx context.Context, id string, consultantID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("consultant_id", consultantID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AssignConsultant - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AssignConsultant - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AssignConsultant - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteCreatedBefore физически удаляет бронирования старше cutoff.
// Используется ТОЛЬКО retention purge - обычный код бронирования не удаляет.
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func (r *Repository) scanBooking(row *sql.Row, op string) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingCode,
		&booking.StoreID,
		&booking.StationID,
		&booking.ServiceID,
		&booking.ConsultantID,
		&booking.CustomerID,
		&booking.ScheduledStartAt,
		&booking.ScheduledEndAt,
		&booking.Status,
		&booking.SourceChannel,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.BookingCode,
			&booking.StoreID,
			&booking.StationID,
			&booking.ServiceID,
			&booking.ConsultantID,
			&booking.CustomerID,
			&booking.ScheduledStartAt,
			&booking.ScheduledEndAt,
			&booking.Status,
			&booking.SourceChannel,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
