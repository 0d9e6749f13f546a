package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	postsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/posts"
	scheduleService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/schedule"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// Calculator вычисляет доступность слотов точки.
// Чистый относительно "сейчас": фильтрацию прошедших времен текущего дня
// выполняет вызывающий слой, калькулятор оперирует только датой и расписанием.
type Calculator struct {
	schedule ScheduleResolver
	posts    PostCatalog
	bookings BookingRepository
	logger   Logger
}

// NewCalculator создает новый калькулятор доступности
func NewCalculator(schedule ScheduleResolver, posts PostCatalog, bookings BookingRepository, logger Logger) *Calculator {
	return &Calculator{
		schedule: schedule,
		posts:    posts,
		bookings: bookings,
		logger:   logger,
	}
}

// CheckAt проверяет, можно ли начать обслуживание в конкретный момент.
// Окно [start, start+duration) должно целиком лежать в рабочих часах,
// иначе причина отказа outside_working_hours. Если окно в часах, но
// все подходящие посты заняты пересекающимися бронированиями -
// all_posts_occupied.
func (c *Calculator) CheckAt(ctx context.Context, req CheckRequest) (domain.SlotCheck, error) {
	if req.DurationMinutes <= 0 {
		return domain.SlotCheck{}, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, req.DurationMinutes)
	}
	if err := req.StartTime.Validate(); err != nil {
		return domain.SlotCheck{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	day, err := c.resolveDay(ctx, req.ServicePointID, req.Date)
	if err != nil {
		return domain.SlotCheck{}, err
	}

	end, endErr := req.StartTime.AddMinutes(req.DurationMinutes)
	// Окно, выходящее за границу суток, в рабочие часы не помещается
	if endErr != nil || !day.IsWorking || !day.Contains(req.StartTime, end) {
		return domain.SlotCheck{
			Available: false,
			Reason:    domain.ReasonOutsideWorkingHours,
		}, nil
	}

	eligible, err := c.eligiblePosts(ctx, req.ServicePointID, req.Date, req.CategoryID)
	if err != nil {
		return domain.SlotCheck{}, err
	}

	// Кастомные часы поста сужают его доступность внутри дня:
	// окно должно целиком помещаться в часы поста
	total := countCovering(eligible, req.Date.Weekday(), req.StartTime, end)
	if total == 0 {
		return domain.SlotCheck{
			Available: false,
			Reason:    domain.ReasonAllPostsOccupied,
		}, nil
	}

	occupying, err := c.bookings.GetOccupyingForDate(ctx, req.ServicePointID, req.Date, req.ExcludeBookingID)
	if err != nil {
		return domain.SlotCheck{}, fmt.Errorf("%w: CheckAt - get occupying bookings: %w", ErrInternal, err)
	}

	occupied := countOverlapping(occupying, req.StartTime, end, req.CategoryID)
	// Пересекающихся бронирований может быть больше оставшихся постов,
	// если пул сузился после их создания
	if occupied > total {
		occupied = total
	}
	available := total - occupied

	check := domain.SlotCheck{
		Available:      available > 0,
		TotalPosts:     total,
		OccupiedPosts:  occupied,
		AvailablePosts: available,
	}
	if !check.Available {
		check.Reason = domain.ReasonAllPostsOccupied
	}

	return check, nil
}

// TimesForDate перечисляет слоты даты по сетке.
// Шаг сетки - минимальная длительность слота среди активных постов точки.
// durationMinutes задает длину искомого окна; nil означает длину шага.
// Для нерабочего дня возвращает пустой список.
func (c *Calculator) TimesForDate(ctx context.Context, servicePointID int64, date time.Time, categoryID *int64, durationMinutes *int) ([]domain.AvailableSlot, error) {
	day, err := c.resolveDay(ctx, servicePointID, date)
	if err != nil {
		return nil, err
	}
	if !day.IsWorking {
		return []domain.AvailableSlot{}, nil
	}

	eligible, err := c.eligiblePosts(ctx, servicePointID, date, categoryID)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return []domain.AvailableSlot{}, nil
	}

	step, err := c.posts.MinActiveSlotDuration(ctx, servicePointID)
	if err != nil {
		if errors.Is(err, postsService.ErrPointNotFound) {
			return nil, ErrPointNotFound
		}
		return nil, fmt.Errorf("%w: TimesForDate - min slot duration: %v", ErrInternal, err)
	}

	duration := step
	if durationMinutes != nil {
		if *durationMinutes <= 0 {
			return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, *durationMinutes)
		}
		duration = *durationMinutes
	}

	occupying, err := c.bookings.GetOccupyingForDate(ctx, servicePointID, date, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: TimesForDate - get occupying bookings: %v", ErrInternal, err)
	}

	times := gridTimes(day.OpensAt, day.ClosesAt, step, duration)

	slots := make([]domain.AvailableSlot, 0, len(times))
	for _, start := range times {
		end, err := start.AddMinutes(duration)
		if err != nil {
			break
		}

		// Емкость слота зависит от окна: кастомные часы поста могут
		// покрывать одну часть дня и не покрывать другую
		total := countCovering(eligible, date.Weekday(), start, end)
		occupied := countOverlapping(occupying, start, end, categoryID)
		if occupied > total {
			occupied = total
		}

		slots = append(slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: duration,
			AvailablePosts:  total - occupied,
			TotalPosts:      total,
		})
	}

	return slots, nil
}

// NextAvailable ищет ближайший слот с хотя бы одним свободным постом,
// начиная с момента after, в пределах горизонта поиска.
// Возвращает nil, если в горизонте ничего не нашлось.
func (c *Calculator) NextAvailable(ctx context.Context, servicePointID int64, after time.Time, categoryID *int64, durationMinutes int) (*NextSlot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidInput, durationMinutes)
	}

	afterTime := types.NewTimeString(after)
	startDate := time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location())

	for offset := 0; offset < domain.NextAvailableSearchHorizonDays; offset++ {
		date := startDate.AddDate(0, 0, offset)

		slots, err := c.TimesForDate(ctx, servicePointID, date, categoryID, &durationMinutes)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			if slot.IsFull() {
				continue
			}
			// В стартовый день слоты до момента after уже в прошлом
			if offset == 0 && slot.StartTime.IsBefore(afterTime) {
				continue
			}

			return &NextSlot{
				Date:           date,
				StartTime:      slot.StartTime,
				AvailablePosts: slot.AvailablePosts,
				TotalPosts:     slot.TotalPosts,
			}, nil
		}
	}

	c.logger.Info("NextAvailable: no free slot for point=%d within %d days after %s",
		servicePointID, domain.NextAvailableSearchHorizonDays, after.Format(domain.DateFormat))

	return nil, nil
}

// DayOccupancy строит сводку занятости точки на день.
// Для нерабочего дня возвращает ErrPointClosed.
func (c *Calculator) DayOccupancy(ctx context.Context, servicePointID int64, date time.Time) (*domain.DayOccupancy, error) {
	day, err := c.resolveDay(ctx, servicePointID, date)
	if err != nil {
		return nil, err
	}
	if !day.IsWorking {
		return nil, ErrPointClosed
	}

	slots, err := c.TimesForDate(ctx, servicePointID, date, nil, nil)
	if err != nil {
		return nil, err
	}

	occupancy := &domain.DayOccupancy{
		OpensAt:   day.OpensAt,
		ClosesAt:  day.ClosesAt,
		Intervals: slots,
	}

	for i := range slots {
		if slots[i].TotalPosts > occupancy.TotalPosts {
			occupancy.TotalPosts = slots[i].TotalPosts
		}
		if slots[i].IsFull() {
			occupancy.BusyIntervals++
		} else {
			occupancy.FreeIntervals++
		}
	}

	return occupancy, nil
}

// SlotsForCategory перечисляет слоты даты, доступные для категории услуг.
// В пул входят только посты без специализации и посты этой категории.
func (c *Calculator) SlotsForCategory(ctx context.Context, servicePointID int64, date time.Time, categoryID int64) ([]domain.AvailableSlot, error) {
	return c.TimesForDate(ctx, servicePointID, date, &categoryID, nil)
}

func (c *Calculator) resolveDay(ctx context.Context, servicePointID int64, date time.Time) (domain.ResolvedDay, error) {
	day, err := c.schedule.ResolveDay(ctx, servicePointID, date)
	if err != nil {
		if errors.Is(err, scheduleService.ErrPointNotFound) {
			return domain.ResolvedDay{}, ErrPointNotFound
		}
		return domain.ResolvedDay{}, fmt.Errorf("%w: failed to resolve day: %w", ErrInternal, err)
	}
	return day, nil
}

func (c *Calculator) eligiblePosts(ctx context.Context, servicePointID int64, date time.Time, categoryID *int64) ([]*domain.ServicePost, error) {
	eligible, err := c.posts.EligiblePosts(ctx, servicePointID, date, categoryID)
	if err != nil {
		if errors.Is(err, postsService.ErrPointNotFound) {
			return nil, ErrPointNotFound
		}
		return nil, fmt.Errorf("%w: failed to get eligible posts: %w", ErrInternal, err)
	}
	return eligible, nil
}
