package chatstate

import "errors"

var (
	// ErrStateNotFound возвращается, когда состояние диалога не найдено или истекло
	ErrStateNotFound = errors.New("chatstate.repository: conversation state not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("chatstate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("chatstate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("chatstate.repository: failed to scan row")
)
