package posts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	pointRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/servicepoint"
)

// Service каталог постов сервисной точки.
// Отвечает на вопрос "какие посты могут обслужить запрос на дату/категорию"
// и автосоздает посты по умолчанию для точки без каталога.
type Service struct {
	repo      PostRepository
	pointRepo PointRepository
	logger    Logger
}

// NewService создает новый экземпляр каталога постов
func NewService(repo PostRepository, pointRepo PointRepository, logger Logger) *Service {
	return &Service{
		repo:      repo,
		pointRepo: pointRepo,
		logger:    logger,
	}
}

// EligiblePosts возвращает посты, способные обслужить запрос на дату и
// категорию. Пост подходит, если:
//   - он активен;
//   - его кастомное расписание (если задано) отмечает день недели рабочим -
//     пост с нерабочим днем исключается целиком;
//   - категория запроса совместима со специализацией поста.
//
// Посты без кастомного расписания наследуют часы резолвера расписания точки.
func (s *Service) EligiblePosts(ctx context.Context, servicePointID int64, date time.Time, categoryID *int64) ([]*domain.ServicePost, error) {
	all, err := s.postsWithDefaults(ctx, servicePointID)
	if err != nil {
		return nil, err
	}

	eligible := make([]*domain.ServicePost, 0, len(all))
	for _, post := range all {
		if !post.IsActive {
			continue
		}

		if post.CustomSchedule != nil {
			day := post.CustomSchedule.ForWeekday(date.Weekday())
			if !day.IsWorking {
				continue
			}
		}

		if !post.MatchesCategory(categoryID) {
			continue
		}

		eligible = append(eligible, post)
	}

	return eligible, nil
}

// EnsureDefaults гарантирует наличие постов у точки.
// Если каталог пуст, создает point.PostCount постов с настройками точки -
// бронирование не может существовать без поста.
func (s *Service) EnsureDefaults(ctx context.Context, servicePointID int64) ([]*domain.ServicePost, error) {
	return s.postsWithDefaults(ctx, servicePointID)
}

// UpdatePost обновляет настройки поста, валидируя кастомное расписание до записи
func (s *Service) UpdatePost(ctx context.Context, post *domain.ServicePost) error {
	if post.CustomSchedule != nil {
		if err := post.CustomSchedule.Validate(); err != nil {
			s.logger.Warn("UpdatePost: invalid custom schedule for post=%d: %v", post.ID, err)
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return fmt.Errorf("%w: UpdatePost - update: %v", ErrInternal, err)
	}

	return nil
}

// MinActiveSlotDuration возвращает минимальную длительность слота среди
// активных постов точки. Используется как шаг сетки перечисления слотов.
// Если активных постов нет, возвращает значение точки по умолчанию.
func (s *Service) MinActiveSlotDuration(ctx context.Context, servicePointID int64) (int, error) {
	point, err := s.pointRepo.GetByID(ctx, servicePointID)
	if err != nil {
		if errors.Is(err, pointRepo.ErrPointNotFound) {
			return 0, ErrPointNotFound
		}
		return 0, fmt.Errorf("%w: MinActiveSlotDuration - get point: %w", ErrInternal, err)
	}

	all, err := s.postsWithDefaults(ctx, servicePointID)
	if err != nil {
		return 0, err
	}

	min := 0
	for _, post := range all {
		if !post.IsActive {
			continue
		}
		if min == 0 || post.SlotDurationMinutes < min {
			min = post.SlotDurationMinutes
		}
	}

	if min == 0 {
		min = point.DefaultSlotDurationMinutes
	}
	if min == 0 {
		min = domain.DefaultSlotDurationMinutes
	}

	return min, nil
}

// postsWithDefaults загружает посты точки, автосоздавая дефолтные при пустом каталоге
func (s *Service) postsWithDefaults(ctx context.Context, servicePointID int64) ([]*domain.ServicePost, error) {
	point, err := s.pointRepo.GetByID(ctx, servicePointID)
	if err != nil {
		if errors.Is(err, pointRepo.ErrPointNotFound) {
			return nil, ErrPointNotFound
		}
		return nil, fmt.Errorf("%w: failed to get point: %w", ErrInternal, err)
	}

	existing, err := s.repo.GetByPoint(ctx, servicePointID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get posts: %w", ErrInternal, err)
	}

	if len(existing) > 0 {
		return existing, nil
	}

	count := point.PostCount
	if count <= 0 {
		count = domain.DefaultPostCount
	}
	duration := point.DefaultSlotDurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	defaults := make([]*domain.ServicePost, 0, count)
	for i := 1; i <= count; i++ {
		defaults = append(defaults, &domain.ServicePost{
			ServicePointID:      servicePointID,
			SequenceNumber:      i,
			SlotDurationMinutes: duration,
			IsActive:            true,
		})
	}

	if err := s.repo.CreateBatch(ctx, defaults); err != nil {
		return nil, fmt.Errorf("%w: failed to provision default posts: %w", ErrInternal, err)
	}

	s.logger.Info("EligiblePosts: provisioned %d default posts for point=%d", count, servicePointID)

	return s.repo.GetByPoint(ctx, servicePointID)
}
