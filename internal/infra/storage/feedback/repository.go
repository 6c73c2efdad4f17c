package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий отзывов клиентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("feedback").
		Columns("id", "booking_id", "rating_1_5", "comment", "store_id", "service_id", "consultant_id").
		Values(fb.ID, fb.BookingID, fb.Rating, fb.Comment, fb.StoreID, fb.ServiceID, fb.ConsultantID).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&fb.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return fb, nil
}

// DeleteCreatedBefore удаляет отзывы старше cutoff (только для retention purge)
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("feedback").
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
