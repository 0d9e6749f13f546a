package create_booking

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// AvailabilityChecker интерфейс калькулятора доступности слотов
type AvailabilityChecker interface {
	CheckAt(ctx context.Context, req availability.CheckRequest) (domain.SlotCheck, error)
}

// PostCatalog интерфейс каталога постов для дефолтной длительности слота
type PostCatalog interface {
	MinActiveSlotDuration(ctx context.Context, servicePointID int64) (int, error)
}

// MetricsAggregatorClient интерфейс клиента сервиса агрегации метрик
type MetricsAggregatorClient interface {
	TriggerRecalculation(ctx context.Context, req metricsaggregator.RecalculationRequest) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
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
