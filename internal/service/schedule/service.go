package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	scheduleRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/schedule"
	pointRepo "github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/servicepoint"
)

// Service резолвер расписания сервисной точки.
// Комбинирует недельный шаблон с исключениями на конкретные даты
// и владеет записью того и другого.
type Service struct {
	repo      TemplateRepository
	pointRepo PointRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(repo TemplateRepository, pointRepo PointRepository, logger Logger) *Service {
	return &Service{
		repo:      repo,
		pointRepo: pointRepo,
		logger:    logger,
	}
}

// ResolveDay определяет, работает ли точка в указанную дату и в какие часы.
// Порядок: исключение на дату -> шаблон на день недели -> закрыто.
// Точка в нерабочем операционном статусе закрыта независимо от расписания.
func (s *Service) ResolveDay(ctx context.Context, servicePointID int64, date time.Time) (domain.ResolvedDay, error) {
	point, err := s.pointRepo.GetByID(ctx, servicePointID)
	if err != nil {
		if errors.Is(err, pointRepo.ErrPointNotFound) {
			return domain.ResolvedDay{}, ErrPointNotFound
		}
		return domain.ResolvedDay{}, fmt.Errorf("%w: ResolveDay - get point: %w", ErrInternal, err)
	}

	if !point.AcceptsBookings() {
		s.logger.Info("ResolveDay: point id=%d is not accepting bookings (status=%s)",
			servicePointID, point.OperationalStatus)
		return domain.ResolvedDay{IsWorking: false}, nil
	}

	return s.resolveHours(ctx, servicePointID, date)
}

// resolveHours резолвит часы без проверки операционного статуса точки
func (s *Service) resolveHours(ctx context.Context, servicePointID int64, date time.Time) (domain.ResolvedDay, error) {
	// 1. Исключение на дату авторитетно
	exc, err := s.repo.GetExceptionByDate(ctx, servicePointID, dateOnly(date))
	if err == nil {
		return resolvedFromDay(exc.Day()), nil
	}
	if !errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		return domain.ResolvedDay{}, fmt.Errorf("%w: resolveHours - get exception: %w", ErrInternal, err)
	}

	// 2. Шаблон на день недели
	tpl, err := s.repo.GetTemplateByWeekday(ctx, servicePointID, date.Weekday())
	if err == nil {
		return resolvedFromDay(tpl.Day()), nil
	}
	if !errors.Is(err, scheduleRepo.ErrTemplateNotFound) {
		return domain.ResolvedDay{}, fmt.Errorf("%w: resolveHours - get template: %w", ErrInternal, err)
	}

	// 3. Ни исключения, ни шаблона - день считается нерабочим
	return domain.ResolvedDay{IsWorking: false}, nil
}

// SetTemplate создает или обновляет шаблон на (точка, день недели).
// Инвертированные часы отклоняются здесь - на записи, автору расписания.
func (s *Service) SetTemplate(ctx context.Context, tpl *domain.ScheduleTemplate) (*domain.ScheduleTemplate, error) {
	if err := s.checkPointExists(ctx, tpl.ServicePointID); err != nil {
		return nil, err
	}

	day := tpl.Day()
	if err := day.Validate(); err != nil {
		s.logger.Warn("SetTemplate: invalid hours for point=%d weekday=%d: %v",
			tpl.ServicePointID, tpl.Weekday, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}

	saved, err := s.repo.UpsertTemplate(ctx, tpl)
	if err != nil {
		s.logger.Error("SetTemplate: failed to upsert template for point=%d: %v", tpl.ServicePointID, err)
		return nil, fmt.Errorf("%w: SetTemplate - upsert: %v", ErrInternal, err)
	}

	s.logger.Info("SetTemplate: point=%d weekday=%d working=%t", saved.ServicePointID, saved.Weekday, saved.IsWorking)
	return saved, nil
}

// SetException создает или обновляет исключение на (точка, дата)
func (s *Service) SetException(ctx context.Context, exc *domain.ScheduleException) (*domain.ScheduleException, error) {
	if err := s.checkPointExists(ctx, exc.ServicePointID); err != nil {
		return nil, err
	}

	if exc.Date.IsZero() {
		return nil, fmt.Errorf("%w: exception date is required", ErrInvalidInput)
	}

	day := exc.Day()
	if err := day.Validate(); err != nil {
		s.logger.Warn("SetException: invalid hours for point=%d date=%s: %v",
			exc.ServicePointID, exc.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidHours, err)
	}

	exc.Date = dateOnly(exc.Date)

	saved, err := s.repo.UpsertException(ctx, exc)
	if err != nil {
		s.logger.Error("SetException: failed to upsert exception for point=%d: %v", exc.ServicePointID, err)
		return nil, fmt.Errorf("%w: SetException - upsert: %v", ErrInternal, err)
	}

	s.logger.Info("SetException: point=%d date=%s working=%t",
		saved.ServicePointID, saved.Date.Format(domain.DateFormat), saved.IsWorking)
	return saved, nil
}

// RemoveException удаляет исключение, возвращая дату к недельному шаблону
func (s *Service) RemoveException(ctx context.Context, servicePointID int64, date time.Time) error {
	err := s.repo.DeleteException(ctx, servicePointID, dateOnly(date))
	if errors.Is(err, scheduleRepo.ErrExceptionNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: RemoveException - delete: %v", ErrInternal, err)
	}
	return nil
}

// GetWeek возвращает все шаблоны точки
func (s *Service) GetWeek(ctx context.Context, servicePointID int64) ([]*domain.ScheduleTemplate, error) {
	if err := s.checkPointExists(ctx, servicePointID); err != nil {
		return nil, err
	}

	templates, err := s.repo.GetTemplatesByPoint(ctx, servicePointID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - get templates: %v", ErrInternal, err)
	}
	return templates, nil
}

func (s *Service) checkPointExists(ctx context.Context, servicePointID int64) error {
	if _, err := s.pointRepo.GetByID(ctx, servicePointID); err != nil {
		if errors.Is(err, pointRepo.ErrPointNotFound) {
			return ErrPointNotFound
		}
		return fmt.Errorf("%w: failed to get point: %v", ErrInternal, err)
	}
	return nil
}

func resolvedFromDay(day domain.DaySchedule) domain.ResolvedDay {
	if !day.IsWorking || day.OpensAt == nil || day.ClosesAt == nil {
		return domain.ResolvedDay{IsWorking: false}
	}
	return domain.ResolvedDay{
		IsWorking: true,
		OpensAt:   *day.OpensAt,
		ClosesAt:  *day.ClosesAt,
	}
}

// dateOnly обнуляет компонент времени у даты
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
