package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository read-only репозиторий аналитических агрегатов.
// Читает напрямую таблицы bookings/incidents/services - ядро бронирования
// сюда ничего не пишет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аналитики
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// DailySummary подсчитывает бронирования магазина за день по исходам
func (r *Repository) DailySummary(ctx context.Context, storeID int64, day time.Time) (*domain.DailySummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'COMPLETED')",
		"COUNT(*) FILTER (WHERE status = 'NO_SHOW')",
		"COUNT(*) FILTER (WHERE status = 'CANCELLED')",
	).
		From("bookings").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.GtOrEq{"scheduled_start_at": dayStart}).
		Where(squirrel.Lt{"scheduled_start_at": dayEnd}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: DailySummary - build select query: %v", ErrBuildQuery, err)
	}

	summary := &domain.DailySummary{StoreID: storeID, Day: dayStart}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&summary.Bookings,
		&summary.Completed,
		&summary.NoShow,
		&summary.Cancelled,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: DailySummary - scan summary: %v", ErrScanRow, err)
	}

	return summary, nil
}

// PeakHours строит почасовую гистограмму бронирований магазина за период
func (r *Repository) PeakHours(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.PeakHourBucket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"EXTRACT(HOUR FROM scheduled_start_at)::int AS hour",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.GtOrEq{"scheduled_start_at": from}).
		Where(squirrel.Lt{"scheduled_start_at": to}).
		GroupBy("hour").
		OrderBy("hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: PeakHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: PeakHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	buckets := make([]*domain.PeakHourBucket, 0)
	for rows.Next() {
		var b domain.PeakHourBucket
		if err := rows.Scan(&b.Hour, &b.Bookings); err != nil {
			return nil, fmt.Errorf("%w: PeakHours - scan row: %v", ErrScanRow, err)
		}
		buckets = append(buckets, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: PeakHours - rows error: %v", ErrScanRow, err)
	}

	return buckets, nil
}

// ServiceMix агрегирует бронирования магазина по услугам за период
func (r *Repository) ServiceMix(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.ServiceMixRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.category",
		"s.name",
		"COUNT(*)",
		"COALESCE(SUM(s.price_cents), 0)",
	).
		From("bookings b").
		Join("services s ON s.id = b.service_id").
		Where(squirrel.Eq{"b.store_id": storeID}).
		Where(squirrel.GtOrEq{"b.scheduled_start_at": from}).
		Where(squirrel.Lt{"b.scheduled_start_at": to}).
		GroupBy("s.category", "s.name").
		OrderBy("s.category ASC", "s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ServiceMix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ServiceMix - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ServiceMixRow, 0)
	for rows.Next() {
		var row domain.ServiceMixRow
		if err := rows.Scan(&row.Category, &row.ServiceName, &row.Bookings, &row.ValueCents); err != nil {
			return nil, fmt.Errorf("%w: ServiceMix - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ServiceMix - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ConsultantPerformance агрегирует бронирования по консультантам за период
func (r *Repository) ConsultantPerformance(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.ConsultantPerformanceRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"consultant_id",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE status = 'COMPLETED')",
		"COUNT(*) FILTER (WHERE status = 'NO_SHOW')",
	).
		From("bookings").
		Where(squirrel.Eq{"store_id": storeID}).
		Where(squirrel.NotEq{"consultant_id": nil}).
		Where(squirrel.GtOrEq{"scheduled_start_at": from}).
		Where(squirrel.Lt{"scheduled_start_at": to}).
		GroupBy("consultant_id").
		OrderBy("consultant_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ConsultantPerformance - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ConsultantPerformance - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ConsultantPerformanceRow, 0)
	for rows.Next() {
		var row domain.ConsultantPerformanceRow
		if err := rows.Scan(&row.ConsultantID, &row.Bookings, &row.Completed, &row.NoShow); err != nil {
			return nil, fmt.Errorf("%w: ConsultantPerformance - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ConsultantPerformance - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// IncidentRate считает инциденты на 100 бронирований по дням за период
func (r *Repository) IncidentRate(ctx context.Context, storeID int64, from, to time.Time) ([]*domain.IncidentRateRow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"DATE(i.created_at) AS day",
		"COUNT(i.id)",
		"COUNT(DISTINCT b.id)",
		"ROUND((COUNT(i.id)::numeric / NULLIF(COUNT(DISTINCT b.id), 0)) * 100.0, 2)",
	).
		From("incidents i").
		Join("bookings b ON b.id = i.booking_id").
		Where(squirrel.Eq{"b.store_id": storeID}).
		Where(squirrel.GtOrEq{"i.created_at": from}).
		Where(squirrel.Lt{"i.created_at": to}).
		GroupBy("day").
		OrderBy("day ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: IncidentRate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: IncidentRate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.IncidentRateRow, 0)
	for rows.Next() {
		var row domain.IncidentRateRow
		if err := rows.Scan(&row.Day, &row.Incidents, &row.Bookings, &row.IncidentsPer100); err != nil {
			return nil, fmt.Errorf("%w: IncidentRate - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: IncidentRate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
