package reschedule_booking

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID       int64            // ID переносимого бронирования
	ClientID        *int64           // ID клиента-инициатора, nil = гостевой вызов
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	DurationMinutes int              // Новая длительность; 0 = сохранить текущую
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID              int64
	ServicePointID  int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	UpdatedAt       time.Time
}
