package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fakeSchedule единое расписание на все дни, кроме явно закрытых дат
type fakeSchedule struct {
	opensAt     types.TimeString
	closesAt    types.TimeString
	closedDates map[string]bool
	closedAll   bool
}

func (s *fakeSchedule) ResolveDay(_ context.Context, _ int64, date time.Time) (domain.ResolvedDay, error) {
	if s.closedAll || s.closedDates[date.Format(domain.DateFormat)] {
		return domain.ResolvedDay{IsWorking: false}, nil
	}
	return domain.ResolvedDay{IsWorking: true, OpensAt: s.opensAt, ClosesAt: s.closesAt}, nil
}

type fakePosts struct {
	posts []*domain.ServicePost
}

func (p *fakePosts) EligiblePosts(_ context.Context, _ int64, _ time.Time, categoryID *int64) ([]*domain.ServicePost, error) {
	eligible := make([]*domain.ServicePost, 0, len(p.posts))
	for _, post := range p.posts {
		if post.IsActive && post.MatchesCategory(categoryID) {
			eligible = append(eligible, post)
		}
	}
	return eligible, nil
}

func (p *fakePosts) MinActiveSlotDuration(_ context.Context, _ int64) (int, error) {
	min := 0
	for _, post := range p.posts {
		if !post.IsActive {
			continue
		}
		if min == 0 || post.SlotDurationMinutes < min {
			min = post.SlotDurationMinutes
		}
	}
	if min == 0 {
		min = domain.DefaultSlotDurationMinutes
	}
	return min, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
}

func (b *fakeBookings) GetOccupyingForDate(_ context.Context, _ int64, date time.Time, excludeBookingID *int64) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(b.bookings))
	for _, booking := range b.bookings {
		if !booking.BookingDate.Equal(date) || !booking.OccupiesPost() {
			continue
		}
		if excludeBookingID != nil && booking.ID == *excludeBookingID {
			continue
		}
		result = append(result, booking)
	}
	return result, nil
}

func threePosts(durationMinutes int) *fakePosts {
	return &fakePosts{posts: []*domain.ServicePost{
		{ID: 1, SequenceNumber: 1, SlotDurationMinutes: durationMinutes, IsActive: true},
		{ID: 2, SequenceNumber: 2, SlotDurationMinutes: durationMinutes, IsActive: true},
		{ID: 3, SequenceNumber: 3, SlotDurationMinutes: durationMinutes, IsActive: true},
	}}
}

func booking(id int64, date time.Time, start string, minutes int) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServicePointID:  1,
		BookingDate:     date,
		StartTime:       types.TimeString(start),
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
	}
}

// 2026-04-14 - вторник
var tuesday = time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)

func newCalculator(schedule *fakeSchedule, posts *fakePosts, bookings *fakeBookings) *Calculator {
	return NewCalculator(schedule, posts, bookings, noopLogger{})
}

func TestTimesForDate_FullGrid(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{},
	)

	slots, err := calc.TimesForDate(context.Background(), 1, tuesday, nil, nil)
	require.NoError(t, err)

	// 09:00-18:00 с шагом 15 минут - 36 слотов
	require.Len(t, slots, 36)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "17:45", slots[35].StartTime.String())
	for _, slot := range slots {
		assert.Equal(t, 3, slot.TotalPosts)
		assert.Equal(t, 3, slot.AvailablePosts)
	}
}

func TestTimesForDate_BookingReducesCapacity(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "10:00", 30),
		}},
	)

	slots, err := calc.TimesForDate(context.Background(), 1, tuesday, nil, nil)
	require.NoError(t, err)

	byTime := make(map[string]domain.AvailableSlot, len(slots))
	for _, slot := range slots {
		byTime[slot.StartTime.String()] = slot
	}

	// Бронирование 10:00-10:30 занимает один пост в двух 15-минутных интервалах
	assert.Equal(t, 2, byTime["10:00"].AvailablePosts)
	assert.Equal(t, 2, byTime["10:15"].AvailablePosts)

	// Соседние интервалы не затронуты, касание границами - не пересечение
	assert.Equal(t, 3, byTime["09:45"].AvailablePosts)
	assert.Equal(t, 3, byTime["10:30"].AvailablePosts)
}

func TestTimesForDate_ClosedDayIsEmpty(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{closedAll: true},
		threePosts(15),
		&fakeBookings{},
	)

	slots, err := calc.TimesForDate(context.Background(), 1, tuesday, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCheckAt_OutsideWorkingHours(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{},
	)

	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "08:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, domain.ReasonOutsideWorkingHours, check.Reason)
}

func TestCheckAt_WindowMustFitInsideHours(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{},
	)

	// Окно 17:50-18:20 выходит за закрытие
	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "17:50", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, domain.ReasonOutsideWorkingHours, check.Reason)

	// Окно ровно до закрытия допустимо
	check, err = calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "17:30", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, check.Available)
}

func TestCheckAt_AllPostsOccupied(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "10:00", 60),
			booking(2, tuesday, "10:00", 60),
			booking(3, tuesday, "10:15", 30),
		}},
	)

	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, domain.ReasonAllPostsOccupied, check.Reason)
	assert.Equal(t, 3, check.TotalPosts)
	assert.Equal(t, 3, check.OccupiedPosts)
	assert.Equal(t, 0, check.AvailablePosts)
}

func TestCheckAt_IsIdempotent(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(15),
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "10:00", 30),
		}},
	)

	req := CheckRequest{ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30}

	first, err := calc.CheckAt(context.Background(), req)
	require.NoError(t, err)
	second, err := calc.CheckAt(context.Background(), req)
	require.NoError(t, err)

	// Чтение не меняет занятость
	assert.Equal(t, first, second)
}

func TestCheckAt_ExcludesOwnBookingOnReschedule(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
		}},
		&fakeBookings{bookings: []*domain.Booking{
			booking(7, tuesday, "10:00", 30),
		}},
	)

	// Без исключения слот занят собственным бронированием
	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, check.Available)

	excludeID := int64(7)
	check, err = calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
		ExcludeBookingID: &excludeID,
	})
	require.NoError(t, err)
	assert.True(t, check.Available)
}

func TestCheckAt_CategoryPools(t *testing.T) {
	tiresCat := int64(5)
	otherCat := int64(7)

	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true, CategoryID: &tiresCat},
			{ID: 2, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true},
		}},
		&fakeBookings{},
	)

	// Для категории шиномонтажа доступны оба поста
	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
		CategoryID: &tiresCat,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, check.TotalPosts)

	// Для другой категории специализированный пост исключен
	check, err = calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
		CategoryID: &otherCat,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, check.TotalPosts)
}

func TestNextAvailable_SkipsFullSlots(t *testing.T) {
	// Один пост, занят 09:00-11:00; ближайший свободный слот - 11:00
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 60, IsActive: true},
		}},
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "09:00", 120),
		}},
	)

	after := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	slot, err := calc.NextAvailable(context.Background(), 1, after, nil, 60)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, tuesday.Format(domain.DateFormat), slot.Date.Format(domain.DateFormat))
	assert.Equal(t, "11:00", slot.StartTime.String())
}

func TestNextAvailable_RollsOverToNextDay(t *testing.T) {
	closedToday := map[string]bool{tuesday.Format(domain.DateFormat): true}
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00", closedDates: closedToday},
		threePosts(30),
		&fakeBookings{},
	)

	after := time.Date(2026, 4, 14, 12, 0, 0, 0, time.UTC)
	slot, err := calc.NextAvailable(context.Background(), 1, after, nil, 30)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "2026-04-15", slot.Date.Format(domain.DateFormat))
	assert.Equal(t, "09:00", slot.StartTime.String())
}

func TestNextAvailable_SkipsPastTimesToday(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		threePosts(30),
		&fakeBookings{},
	)

	after := time.Date(2026, 4, 14, 14, 10, 0, 0, time.UTC)
	slot, err := calc.NextAvailable(context.Background(), 1, after, nil, 30)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, "14:30", slot.StartTime.String())
}

func TestNextAvailable_HorizonExhausted(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{closedAll: true},
		threePosts(30),
		&fakeBookings{},
	)

	after := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	slot, err := calc.NextAvailable(context.Background(), 1, after, nil, 30)
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestDayOccupancy(t *testing.T) {
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "11:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 60, IsActive: true},
		}},
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "09:00", 60),
		}},
	)

	occupancy, err := calc.DayOccupancy(context.Background(), 1, tuesday)
	require.NoError(t, err)
	assert.Equal(t, "09:00", occupancy.OpensAt.String())
	assert.Equal(t, "11:00", occupancy.ClosesAt.String())
	assert.Equal(t, 1, occupancy.TotalPosts)
	assert.Len(t, occupancy.Intervals, 2)
	assert.Equal(t, 1, occupancy.BusyIntervals)
	assert.Equal(t, 1, occupancy.FreeIntervals)
}

func TestDayOccupancy_ClosedDay(t *testing.T) {
	calc := newCalculator(&fakeSchedule{closedAll: true}, threePosts(30), &fakeBookings{})

	_, err := calc.DayOccupancy(context.Background(), 1, tuesday)
	assert.ErrorIs(t, err, ErrPointClosed)
}

func tsp(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func TestCheckAt_OccupiedNeverExceedsTotal(t *testing.T) {
	// Пул сузился до одного поста уже после создания двух бронирований
	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
			{ID: 2, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: false},
		}},
		&fakeBookings{bookings: []*domain.Booking{
			booking(1, tuesday, "10:00", 30),
			booking(2, tuesday, "10:00", 30),
		}},
	)

	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.False(t, check.Available)
	assert.Equal(t, 1, check.TotalPosts)
	assert.LessOrEqual(t, check.OccupiedPosts, check.TotalPosts)
	assert.Equal(t, 0, check.AvailablePosts)
}

func TestCheckAt_CustomHoursNarrowThePool(t *testing.T) {
	// Пост 2 открыт по вторникам только 12:00-14:00
	restricted := &domain.WeeklySchedule{
		Tuesday: domain.DaySchedule{IsWorking: true, OpensAt: tsp("12:00"), ClosesAt: tsp("14:00")},
	}

	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
			{ID: 2, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true, CustomSchedule: restricted},
		}},
		&fakeBookings{},
	)

	// Утром ограниченный пост емкости не дает
	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "09:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, check.TotalPosts)

	// Внутри своих часов дает
	check, err = calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "12:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, check.TotalPosts)

	// Окно, выступающее за часы поста, его не захватывает
	check, err = calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "13:45", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, check.TotalPosts)
}

func TestTimesForDate_CustomHoursVaryCapacityAcrossDay(t *testing.T) {
	restricted := &domain.WeeklySchedule{
		Tuesday: domain.DaySchedule{IsWorking: true, OpensAt: tsp("12:00"), ClosesAt: tsp("14:00")},
	}

	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
			{ID: 2, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true, CustomSchedule: restricted},
		}},
		&fakeBookings{},
	)

	slots, err := calc.TimesForDate(context.Background(), 1, tuesday, nil, nil)
	require.NoError(t, err)

	byTime := make(map[string]domain.AvailableSlot, len(slots))
	for _, slot := range slots {
		byTime[slot.StartTime.String()] = slot
	}

	assert.Equal(t, 1, byTime["09:00"].TotalPosts)
	assert.Equal(t, 2, byTime["12:00"].TotalPosts)
	assert.Equal(t, 2, byTime["13:30"].TotalPosts)
	assert.Equal(t, 1, byTime["14:00"].TotalPosts)
}

func TestSlotsForCategory_ShrinksPool(t *testing.T) {
	tiresCat := int64(5)
	otherCat := int64(7)

	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "10:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true, CategoryID: &tiresCat},
			{ID: 2, SequenceNumber: 2, SlotDurationMinutes: 30, IsActive: true},
		}},
		&fakeBookings{},
	)

	slots, err := calc.SlotsForCategory(context.Background(), 1, tuesday, otherCat)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.Equal(t, 1, slot.TotalPosts)
	}
}

func TestCanceledBookingDoesNotOccupy(t *testing.T) {
	canceled := booking(1, tuesday, "10:00", 30)
	canceled.Status = domain.StatusCanceledByClient

	calc := newCalculator(
		&fakeSchedule{opensAt: "09:00", closesAt: "18:00"},
		&fakePosts{posts: []*domain.ServicePost{
			{ID: 1, SequenceNumber: 1, SlotDurationMinutes: 30, IsActive: true},
		}},
		&fakeBookings{bookings: []*domain.Booking{canceled}},
	)

	check, err := calc.CheckAt(context.Background(), CheckRequest{
		ServicePointID: 1, Date: tuesday, StartTime: "10:00", DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.True(t, check.Available)
}
