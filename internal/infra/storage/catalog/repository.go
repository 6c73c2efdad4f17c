package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/bontle/BB-BookingService/internal/domain"
	"github.com/bontle/BB-BookingService/pkg/dbmetrics"
	"github.com/bontle/BB-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий справочных данных: магазины, услуги, расписания, консультанты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStore получает магазин по ID
func (r *Repository) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "brand", "region", "name", "city", "is_active", "created_at").
		From("stores").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStore - build select query: %v", ErrBuildQuery, err)
	}

	var store domain.Store
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&store.ID,
		&store.Brand,
		&store.Region,
		&store.Name,
		&store.City,
		&store.IsActive,
		&store.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStore - scan store: %v", ErrScanRow, err)
	}

	return &store, nil
}

// ListActiveStores получает все активные магазины, отсортированные по имени
func (r *Repository) ListActiveStores(ctx context.Context) ([]*domain.Store, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "brand", "region", "name", "city", "is_active", "created_at").
		From("stores").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStores - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveStores - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stores := make([]*domain.Store, 0)
	for rows.Next() {
		var store domain.Store
		if err := rows.Scan(&store.ID, &store.Brand, &store.Region, &store.Name, &store.City, &store.IsActive, &store.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActiveStores - scan row: %v", ErrScanRow, err)
		}
		stores = append(stores, &store)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveStores - rows error: %v", ErrScanRow, err)
	}

	return stores, nil
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "category", "name", "duration_minutes", "price_cents", "active").
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.StoreID,
		&service.Category,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceCents,
		&service.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// ListServices получает активные услуги магазина с фильтрацией по категории
// и подстроке имени, с пагинацией
func (r *Repository) ListServices(ctx context.Context, storeID int64, category *string, nameQuery *string, limit, offset uint64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "store_id", "category", "name", "duration_minutes", "price_cents", "active").
		From("services").
		Where(squirrel.Eq{"store_id": storeID, "active": true})

	if category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *category})
	}
	if nameQuery != nil && *nameQuery != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"name": "%" + *nameQuery + "%"})
	}

	selectBuilder = selectBuilder.OrderBy("name ASC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit).Offset(offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(&service.ID, &service.StoreID, &service.Category, &service.Name, &service.DurationMinutes, &service.PriceCents, &service.Active); err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// ListServiceCategories получает отсортированный список категорий активных услуг магазина
func (r *Repository) ListServiceCategories(ctx context.Context, storeID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT category").
		From("services").
		Where(squirrel.Eq{"store_id": storeID, "active": true}).
		OrderBy("category ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListServiceCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServiceCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("%w: ListServiceCategories - scan row: %v", ErrScanRow, err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServiceCategories - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

// GetActiveHours получает активное расписание магазина на день недели (0=Пн).
// Инвариант схемы: не больше одной активной записи на (store, weekday).
func (r *Repository) GetActiveHours(ctx context.Context, storeID int64, dayOfWeek int) (*domain.StoreHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "day_of_week", "open_time", "close_time", "active").
		From("store_hours").
		Where(squirrel.Eq{"store_id": storeID, "day_of_week": dayOfWeek, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.StoreHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&hours.StoreID,
		&hours.DayOfWeek,
		&hours.OpenTime,
		&hours.CloseTime,
		&hours.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveHours - scan hours: %v", ErrScanRow, err)
	}

	return &hours, nil
}

// GetConsultant получает консультанта по ID
func (r *Repository) GetConsultant(ctx context.Context, id int64) (*domain.Consultant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "name", "is_active").
		From("consultants").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConsultant - build select query: %v", ErrBuildQuery, err)
	}

	var consultant domain.Consultant
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&consultant.ID,
		&consultant.StoreID,
		&consultant.Name,
		&consultant.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConsultantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConsultant - scan consultant: %v", ErrScanRow, err)
	}

	return &consultant, nil
}

// ListConsultants получает активных консультантов магазина
func (r *Repository) ListConsultants(ctx context.Context, storeID int64) ([]*domain.Consultant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "store_id", "name", "is_active").
		From("consultants").
		Where(squirrel.Eq{"store_id": storeID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConsultants - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConsultants - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	consultants := make([]*domain.Consultant, 0)
	for rows.Next() {
		var consultant domain.Consultant
		if err := rows.Scan(&consultant.ID, &consultant.StoreID, &consultant.Name, &consultant.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListConsultants - scan row: %v", ErrScanRow, err)
		}
		consultants = append(consultants, &consultant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListConsultants - rows error: %v", ErrScanRow, err)
	}

	return consultants, nil
}
