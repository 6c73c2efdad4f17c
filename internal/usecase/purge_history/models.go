package purge_history

import (
	"time"

	"github.com/bontle/BB-BookingService/internal/domain"
)

// Request модель запроса на очистку истории
type Request struct {
	OlderThanDays int
	Actor         domain.Actor
}

// Response модель ответа с количеством удалённых записей.
// Счётчики событий/отзывов/инцидентов покрывают строки старше cutoff,
// удалённые напрямую; дочерние строки покинувших базу бронирований,
// снесённые каскадом, не считаются.
type Response struct {
	Cutoff           time.Time
	DeletedBookings  int64
	DeletedEvents    int64
	DeletedFeedback  int64
	DeletedIncidents int64
}
