package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/booking"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/cancelreason"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
)

// Service жизненный цикл бронирования: чтение и переходы статусов.
// Каждый переход проверяется по таблице переходов домена с учетом актора,
// после успешного перехода сервису агрегации метрик отправляется сигнал
// пересчета (best effort - отказ агрегатора переход не откатывает).
type Service struct {
	repo         BookingRepository
	reasonRepo   CancelReasonRepository
	aggregator   MetricsAggregatorClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый сервис жизненного цикла бронирований
func NewService(
	repo BookingRepository,
	reasonRepo CancelReasonRepository,
	aggregator MetricsAggregatorClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		reasonRepo:   reasonRepo,
		aggregator:   aggregator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.getBooking(ctx, id)
}

// GetByClient возвращает бронирования клиента, опционально по статусу
func (s *Service) GetByClient(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result, err := s.repo.GetByClientID(ctx, clientID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClient - get bookings: %v", ErrInternal, err)
	}
	return result, nil
}

// GetByPoint возвращает бронирования сервисной точки по фильтру
func (s *Service) GetByPoint(ctx context.Context, filter domain.PointBookingsFilter) ([]*domain.Booking, error) {
	result, err := s.repo.GetByPointWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPoint - get bookings: %v", ErrInternal, err)
	}
	return result, nil
}

// GetCancellationReasons возвращает справочник причин отмены
func (s *Service) GetCancellationReasons(ctx context.Context) ([]*domain.CancellationReason, error) {
	reasons, err := s.reasonRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCancellationReasons: %v", ErrInternal, err)
	}
	return reasons, nil
}

// Confirm переводит бронирование pending -> confirmed (партнер)
func (s *Service) Confirm(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.StatusConfirmed, domain.ActorPartner)
}

// Start переводит бронирование confirmed -> in_progress (партнер)
func (s *Service) Start(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.StatusInProgress, domain.ActorPartner)
}

// Complete переводит бронирование в completed (партнер).
// Допускается и из confirmed (быстрое обслуживание без отметки начала),
// и из in_progress.
func (s *Service) Complete(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.StatusCompleted, domain.ActorPartner)
}

// MarkNoShow отмечает неявку клиента (партнер), пост освобождается
func (s *Service) MarkNoShow(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.transition(ctx, id, domain.StatusNoShow, domain.ActorPartner)
}

// CancelByClient отменяет бронирование по инициативе клиента.
// Помимо таблицы переходов действует политика сроков: отмена позже чем за
// минимальный срок до начала обслуживания отклоняется с ErrCancellationTooLate.
// clientID nil означает гостевую отмену - она разрешена только для гостевых
// бронирований.
func (s *Service) CancelByClient(ctx context.Context, id int64, clientID *int64, comment *string) (*domain.Booking, error) {
	current, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkClientOwnership(current, clientID); err != nil {
		return nil, err
	}

	if err := domain.CanTransition(current.Status, domain.StatusCanceledByClient, domain.ActorClient); err != nil {
		s.logger.Warn("CancelByClient: booking=%d transition %s -> %s rejected", id, current.Status, domain.StatusCanceledByClient)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, domain.StatusCanceledByClient)
	}

	if err := s.checkCancellationWindow(current); err != nil {
		return nil, err
	}

	if err := s.repo.Cancel(ctx, id, domain.StatusCanceledByClient, nil, comment); err != nil {
		return nil, fmt.Errorf("%w: CancelByClient - cancel: %v", ErrInternal, err)
	}

	s.notifyAggregator(ctx, current.ServicePointID, id, domain.StatusCanceledByClient)

	return s.getBooking(ctx, id)
}

// CancelByPartner отменяет бронирование по инициативе партнера.
// Причина отмены обязательна и валидируется по справочнику.
func (s *Service) CancelByPartner(ctx context.Context, id int64, reasonID int64, comment *string) (*domain.Booking, error) {
	current, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.reasonRepo.GetByID(ctx, reasonID); err != nil {
		if errors.Is(err, cancelreason.ErrReasonNotFound) {
			return nil, fmt.Errorf("%w: reason id=%d", ErrReasonNotFound, reasonID)
		}
		return nil, fmt.Errorf("%w: CancelByPartner - get reason: %v", ErrInternal, err)
	}

	if err := domain.CanTransition(current.Status, domain.StatusCanceledByPartner, domain.ActorPartner); err != nil {
		s.logger.Warn("CancelByPartner: booking=%d transition %s -> %s rejected", id, current.Status, domain.StatusCanceledByPartner)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, domain.StatusCanceledByPartner)
	}

	if err := s.repo.Cancel(ctx, id, domain.StatusCanceledByPartner, &reasonID, comment); err != nil {
		return nil, fmt.Errorf("%w: CancelByPartner - cancel: %v", ErrInternal, err)
	}

	s.notifyAggregator(ctx, current.ServicePointID, id, domain.StatusCanceledByPartner)

	return s.getBooking(ctx, id)
}

// transition выполняет переход статуса, проверяя его по таблице переходов
func (s *Service) transition(ctx context.Context, id int64, to domain.BookingStatus, actor domain.Actor) (*domain.Booking, error) {
	current, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(current.Status, to, actor); err != nil {
		s.logger.Warn("transition: booking=%d transition %s -> %s (actor=%s) rejected", id, current.Status, to, actor)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, fmt.Errorf("%w: transition - update status: %v", ErrInternal, err)
	}

	s.notifyAggregator(ctx, current.ServicePointID, id, to)

	return s.getBooking(ctx, id)
}

// checkCancellationWindow проверяет политику срока клиентской отмены
func (s *Service) checkCancellationWindow(b *domain.Booking) error {
	start := time.Date(
		b.BookingDate.Year(), b.BookingDate.Month(), b.BookingDate.Day(),
		0, 0, 0, 0, time.Local,
	)
	if m, err := b.StartTime.MinutesFromMidnight(); err == nil {
		start = start.Add(time.Duration(m) * time.Minute)
	}

	deadline := start.Add(-time.Duration(domain.ClientCancellationLeadTimeMinutes) * time.Minute)
	if s.timeProvider.Now().After(deadline) {
		return fmt.Errorf("%w: less than %d minutes before start", ErrCancellationTooLate, domain.ClientCancellationLeadTimeMinutes)
	}

	return nil
}

// checkClientOwnership проверяет право клиента управлять бронированием
func (s *Service) checkClientOwnership(b *domain.Booking, clientID *int64) error {
	if clientID == nil {
		// Анонимный вызов управляет только гостевыми бронированиями
		if !b.IsGuest() {
			return ErrPermissionDenied
		}
		return nil
	}
	if b.ClientID == nil || *b.ClientID != *clientID {
		return ErrPermissionDenied
	}
	return nil
}

// notifyAggregator отправляет сигнал пересчета метрик точки.
// Деградация агрегатора логируется и не влияет на результат перехода.
func (s *Service) notifyAggregator(ctx context.Context, servicePointID, bookingID int64, status domain.BookingStatus) {
	err := s.aggregator.TriggerRecalculation(ctx, metricsaggregator.RecalculationRequest{
		ServicePointID: servicePointID,
		BookingID:      bookingID,
		Status:         string(status),
	})
	if err != nil {
		s.logger.Warn("notifyAggregator: recalculation signal failed for point=%d booking=%d: %v",
			servicePointID, bookingID, err)
	}
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return b, nil
}
