package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/booking"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	bookingRepo  BookingRepository
	checker      AvailabilityChecker
	aggregator   MetricsAggregatorClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	aggregator MetricsAggregatorClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		aggregator:   aggregator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Проверка емкости нового слота и запись выполняются в одной сериализуемой
// транзакции; само переносимое бронирование из подсчета занятости исключается,
// чтобы не блокировать перенос внутри собственного окна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, date=%s, time=%s",
		req.BookingID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("RescheduleBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, booking.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to get booking: %v", err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}

		if err := checkClientOwnership(current, req.ClientID); err != nil {
			return err
		}

		// Переносить можно только еще не начатое обслуживание
		if current.Status != domain.StatusPending && current.Status != domain.StatusConfirmed {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s is not reschedulable",
				req.BookingID, current.Status)
			return fmt.Errorf("%w: status %s", ErrNotReschedulable, current.Status)
		}

		duration := req.DurationMinutes
		if duration == 0 {
			duration = current.DurationMinutes
		}

		slotCheck, err := uc.checker.CheckAt(txCtx, availability.CheckRequest{
			ServicePointID:   current.ServicePointID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  duration,
			CategoryID:       current.CategoryID,
			ExcludeBookingID: &current.ID,
		})
		if err != nil {
			if errors.Is(err, availability.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("RescheduleBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
		}

		if !slotCheck.Available {
			uc.logger.Warn("RescheduleBooking: slot %s not available, reason=%s",
				req.StartTime, slotCheck.Reason)
			if slotCheck.Reason == domain.ReasonOutsideWorkingHours {
				return ErrOutsideWorkingHours
			}
			return ErrNoCapacity
		}

		endTime, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Reschedule(txCtx, current.ID, req.Date, req.StartTime, &endTime, duration); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		updated, err := uc.bookingRepo.GetByID(txCtx, current.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	uc.notifyAggregator(ctx, result)

	return &Response{
		ID:              result.ID,
		ServicePointID:  result.ServicePointID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// checkClientOwnership проверяет право клиента переносить бронирование.
// Гостевой вызов переносит только гостевые бронирования.
func checkClientOwnership(b *domain.Booking, clientID *int64) error {
	if clientID == nil {
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

// notifyAggregator отправляет сигнал пересчета метрик точки (best effort)
func (uc *UseCase) notifyAggregator(ctx context.Context, b *domain.Booking) {
	err := uc.aggregator.TriggerRecalculation(ctx, metricsaggregator.RecalculationRequest{
		ServicePointID: b.ServicePointID,
		BookingID:      b.ID,
		Status:         string(b.Status),
	})
	if err != nil {
		uc.logger.Warn("RescheduleBooking: recalculation signal failed for point=%d booking=%d: %v",
			b.ServicePointID, b.ID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, domain.MaxSlotDurationMinutes)
	}
	return nil
}

// validateDate проверяет, что новая дата не в прошлом
func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// validateBookingTime проверяет, что сегодняшний перенос не в прошедшее время
func validateBookingTime(bookingDate time.Time, startTime types.TimeString, now time.Time) error {
	if !isSameDay(bookingDate, now) {
		return nil
	}
	if startTime.IsBefore(types.NewTimeString(now)) {
		return ErrTooLateToBook
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
