package bookings

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByPointWithFilter(ctx context.Context, filter domain.PointBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reasonID *int64, comment *string) error
}

// CancelReasonRepository интерфейс справочника причин отмены
type CancelReasonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CancellationReason, error)
	GetAll(ctx context.Context) ([]*domain.CancellationReason, error)
}

// MetricsAggregatorClient интерфейс клиента сервиса агрегации метрик
type MetricsAggregatorClient interface {
	TriggerRecalculation(ctx context.Context, req metricsaggregator.RecalculationRequest) error
}

// TimeProvider отдает текущее время; в тестах подменяется фиксированным
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
