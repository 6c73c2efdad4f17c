package catalog

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("catalog.repository: store not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrHoursNotFound возвращается, когда нет активного расписания на день недели
	ErrHoursNotFound = errors.New("catalog.repository: store hours not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("catalog.repository: consultant not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
