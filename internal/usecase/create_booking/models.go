package create_booking

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServicePointID  int64            // ID сервисной точки
	ClientID        *int64           // ID клиента, nil = гостевое бронирование
	CarID           *int64           // ID автомобиля (опционально)
	CategoryID      *int64           // ID категории услуг, nil = общий пул постов
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность; 0 = минимальная длительность слота точки
	TotalPrice      float64          // Стоимость обслуживания
	Comment         *string          // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServicePointID  int64
	ClientID        *int64
	CarID           *int64
	CategoryID      *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	PaymentStatus   string
	TotalPrice      float64
	AvailablePosts  int // свободные посты на слоте после создания
	TotalPosts      int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
