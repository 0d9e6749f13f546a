package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	postsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/posts"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	checker      AvailabilityChecker
	posts        PostCatalog
	aggregator   MetricsAggregatorClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	checker AvailabilityChecker,
	posts PostCatalog,
	aggregator MetricsAggregatorClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		checker:      checker,
		posts:        posts,
		aggregator:   aggregator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка емкости и запись выполняются в одной сериализуемой транзакции:
// конкурентные создания на один слот сериализуются, лишние получают
// ErrNoCapacity без записи строки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: point=%d, date=%s, time=%s, duration=%d",
		req.ServicePointID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата и время не должны быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingTime(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	// 3. Длительность по умолчанию - минимальный слот точки
	duration := req.DurationMinutes
	if duration == 0 {
		minDuration, err := uc.posts.MinActiveSlotDuration(ctx, req.ServicePointID)
		if err != nil {
			if errors.Is(err, postsService.ErrPointNotFound) {
				uc.logger.Warn("CreateBooking: point id=%d not found", req.ServicePointID)
				return nil, ErrPointNotFound
			}
			uc.logger.Error("CreateBooking: failed to get default duration: %v", err)
			return nil, fmt.Errorf("%w: failed to get default duration: %v", ErrInternal, err)
		}
		duration = minDuration
	}

	var result *domain.Booking
	var check domain.SlotCheck

	// 4. Проверка емкости и запись в сериализуемой транзакции.
	// Выборка занятости внутри транзакции блокирует строки (FOR UPDATE).
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		slotCheck, err := uc.checker.CheckAt(txCtx, availability.CheckRequest{
			ServicePointID:  req.ServicePointID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			CategoryID:      req.CategoryID,
		})
		if err != nil {
			if errors.Is(err, availability.ErrPointNotFound) {
				uc.logger.Warn("CreateBooking: point id=%d not found", req.ServicePointID)
				return ErrPointNotFound
			}
			if errors.Is(err, availability.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %w", ErrInternal, err)
		}

		if !slotCheck.Available {
			uc.logger.Warn("CreateBooking: slot %s not available, reason=%s (%d/%d posts taken)",
				req.StartTime, slotCheck.Reason, slotCheck.OccupiedPosts, slotCheck.TotalPosts)
			if slotCheck.Reason == domain.ReasonOutsideWorkingHours {
				return ErrOutsideWorkingHours
			}
			return ErrNoCapacity
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d posts taken",
			slotCheck.OccupiedPosts, slotCheck.TotalPosts)

		endTime, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			return fmt.Errorf("%w: failed to calculate end time: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			ServicePointID:  req.ServicePointID,
			ClientID:        req.ClientID,
			CarID:           req.CarID,
			CategoryID:      req.CategoryID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         &endTime,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentUnpaid,
			TotalPrice:      req.TotalPrice,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		check = slotCheck
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Сигнал пересчета метрик после фиксации транзакции (best effort)
	uc.notifyAggregator(ctx, result)

	return &Response{
		ID:              result.ID,
		ServicePointID:  result.ServicePointID,
		ClientID:        result.ClientID,
		CarID:           result.CarID,
		CategoryID:      result.CategoryID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		TotalPrice:      result.TotalPrice,
		AvailablePosts:  check.AvailablePosts - 1,
		TotalPosts:      check.TotalPosts,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// notifyAggregator отправляет сигнал пересчета метрик точки.
// Отказ агрегатора логируется и не влияет на результат создания.
func (uc *UseCase) notifyAggregator(ctx context.Context, b *domain.Booking) {
	err := uc.aggregator.TriggerRecalculation(ctx, metricsaggregator.RecalculationRequest{
		ServicePointID: b.ServicePointID,
		BookingID:      b.ID,
		Status:         string(b.Status),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: recalculation signal failed for point=%d booking=%d: %v",
			b.ServicePointID, b.ID, err)
	}
}
