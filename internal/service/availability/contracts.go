package availability

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

// ScheduleResolver интерфейс резолвера расписания точки
type ScheduleResolver interface {
	ResolveDay(ctx context.Context, servicePointID int64, date time.Time) (domain.ResolvedDay, error)
}

// PostCatalog интерфейс каталога постов точки
type PostCatalog interface {
	EligiblePosts(ctx context.Context, servicePointID int64, date time.Time, categoryID *int64) ([]*domain.ServicePost, error)
	MinActiveSlotDuration(ctx context.Context, servicePointID int64) (int, error)
}

// BookingRepository интерфейс чтения занимающих посты бронирований
type BookingRepository interface {
	GetOccupyingForDate(ctx context.Context, servicePointID int64, date time.Time, excludeBookingID *int64) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
