package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
var ErrInvalidTimeString = errors.New("invalid time string format")

const timeStringLayout = "15:04"

// TimeString время в формате "HH:MM" (24-часовой формат с ведущими нулями).
// Используется для рабочих часов магазинов и времени начала слотов.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(parsed.Format(timeStringLayout)), nil
}

// Validate проверяет, что значение соответствует формату HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала дня
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes вперёд (в пределах суток)
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return TimeString(parsed.Add(time.Duration(minutes) * time.Minute).Format(timeStringLayout)), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// On совмещает время с датой: возвращает time.Time в локации даты
func (t TimeString) On(date time.Time) (time.Time, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает string, []byte и time.Time (колонки типа TIME)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		// Postgres TIME приходит как "09:00:00" - обрезаем секунды
		if len(v) > 5 {
			v = v[:5]
		}
		*t = TimeString(v)
		return t.Validate()
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}
