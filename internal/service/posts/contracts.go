package posts

import (
	"context"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

// PostRepository интерфейс репозитория постов
type PostRepository interface {
	GetByPoint(ctx context.Context, servicePointID int64) ([]*domain.ServicePost, error)
	CreateBatch(ctx context.Context, posts []*domain.ServicePost) error
	Update(ctx context.Context, post *domain.ServicePost) error
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
