package update_schedule

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

type ScheduleService interface {
	SetTemplate(ctx context.Context, tpl *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error)
	SetException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	RemoveException(ctx context.Context, servicePointID int64, date time.Time) error
	GetWeek(ctx context.Context, servicePointID int64) ([]*domain.ScheduleTemplate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
