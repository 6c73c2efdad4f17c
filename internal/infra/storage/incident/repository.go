package incident

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

// Repository репозиторий инцидентов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория инцидентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет инцидент
func (r *Repository) Create(ctx context.Context, inc *domain.Incident) (*domain.Incident, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}

	query, args, err := psqlbuilder.Insert("incidents").
		Columns("id", "booking_id", "staff_user_id", "category", "severity", "note").
		Values(inc.ID, inc.BookingID, inc.StaffUserID, inc.Category, inc.Severity, inc.Note).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&inc.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return inc, nil
}

// DeleteCreatedBefore удаляет инциденты старше cutoff (только для retention purge)
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("incidents").
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
