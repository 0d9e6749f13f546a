package get_available_times

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type AvailabilityCalculator interface {
	TimesForDate(ctx context.Context, servicePointID int64, date time.Time, categoryID *int64, durationMinutes *int) ([]domain.AvailableSlot, error)
	SlotsForCategory(ctx context.Context, servicePointID int64, date time.Time, categoryID int64) ([]domain.AvailableSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
