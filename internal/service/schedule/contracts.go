package schedule

import (
	"context"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов и исключений расписания
type TemplateRepository interface {
	UpsertTemplate(ctx context.Context, tpl *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error)
	UpsertException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error)
	GetTemplateByWeekday(ctx context.Context, servicePointID int64, weekday time.Weekday) (*domain.ScheduleTemplate, error)
	GetTemplatesByPoint(ctx context.Context, servicePointID int64) ([]*domain.ScheduleTemplate, error)
	GetExceptionByDate(ctx context.Context, servicePointID int64, date time.Time) (*domain.ScheduleException, error)
	DeleteException(ctx context.Context, servicePointID int64, date time.Time) error
}

// PointRepository интерфейс репозитория сервисных точек
type PointRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServicePoint, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
