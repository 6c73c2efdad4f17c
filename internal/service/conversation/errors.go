package conversation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("conversation.service: invalid input data")

	// ErrStateNotFound возвращается, когда состояния диалога нет или оно истекло
	ErrStateNotFound = errors.New("conversation.service: conversation state not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conversation.service: internal error")
)
