package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/infra/storage/booking"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/integrations/metricsaggregator"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/ptr"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Reschedule(_ context.Context, id int64, date time.Time, start types.TimeString, end *types.TimeString, durationMinutes int) error {
	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	b.BookingDate = date
	b.StartTime = start
	b.EndTime = end
	b.DurationMinutes = durationMinutes
	return nil
}

// fakeChecker проверяет занятость по настроенному списку чужих бронирований
type fakeChecker struct {
	totalPosts int
	opensAt    types.TimeString
	closesAt   types.TimeString
	others     []*domain.Booking

	lastExcludeID *int64
}

func (c *fakeChecker) CheckAt(_ context.Context, req availability.CheckRequest) (domain.SlotCheck, error) {
	c.lastExcludeID = req.ExcludeBookingID

	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil || req.StartTime.IsBefore(c.opensAt) || c.closesAt.IsBefore(end) {
		return domain.SlotCheck{Available: false, Reason: domain.ReasonOutsideWorkingHours, TotalPosts: c.totalPosts}, nil
	}

	occupied := 0
	for _, b := range c.others {
		if req.ExcludeBookingID != nil && b.ID == *req.ExcludeBookingID {
			continue
		}
		if !b.BookingDate.Equal(req.Date) || !b.OccupiesPost() {
			continue
		}
		bEnd, err := b.EndTimeResolved()
		if err != nil {
			continue
		}
		if b.StartTime.IsBefore(end) && req.StartTime.IsBefore(bEnd) {
			occupied++
		}
	}

	check := domain.SlotCheck{
		TotalPosts:     c.totalPosts,
		OccupiedPosts:  occupied,
		AvailablePosts: c.totalPosts - occupied,
	}
	if check.AvailablePosts <= 0 {
		check.AvailablePosts = 0
		check.Reason = domain.ReasonAllPostsOccupied
		return check, nil
	}
	check.Available = true
	return check, nil
}

type fakeAggregator struct {
	calls int
}

func (a *fakeAggregator) TriggerRecalculation(context.Context, metricsaggregator.RecalculationRequest) error {
	a.calls++
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (t fixedTime) Now() time.Time { return t.now }

var (
	bookingDay = time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)
	morning    = time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)
)

func existingBooking(status domain.BookingStatus) *domain.Booking {
	clientID := int64(10)
	return &domain.Booking{
		ID:              1,
		ServicePointID:  1,
		ClientID:        &clientID,
		BookingDate:     bookingDay,
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 30,
		Status:          status,
	}
}

func newUseCase(repo *fakeBookingRepo, checker *fakeChecker) *UseCase {
	uc := NewUseCase(repo, checker, &fakeAggregator{}, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = fixedTime{now: morning}
	return uc
}

func rescheduleRequest() *Request {
	return &Request{
		BookingID: 1,
		ClientID:  ptr.Ptr(int64(10)),
		Date:      bookingDay,
		StartTime: "12:00",
	}
}

func TestExecute_MovesBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: existingBooking(domain.StatusConfirmed)}}
	checker := &fakeChecker{totalPosts: 2, opensAt: "09:00", closesAt: "18:00"}
	uc := newUseCase(repo, checker)

	resp, err := uc.Execute(context.Background(), rescheduleRequest())
	require.NoError(t, err)

	assert.Equal(t, "12:00", resp.StartTime.String())
	// Длительность сохранена из текущего бронирования
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	moved := repo.bookings[1]
	require.NotNil(t, moved.EndTime)
	assert.Equal(t, "12:30", moved.EndTime.String())
}

func TestExecute_ExcludesItselfFromOccupancy(t *testing.T) {
	current := existingBooking(domain.StatusConfirmed)
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: current}}
	// Единственный пост занят самим переносимым бронированием
	checker := &fakeChecker{totalPosts: 1, opensAt: "09:00", closesAt: "18:00", others: []*domain.Booking{current}}
	uc := newUseCase(repo, checker)

	// Перенос внутри собственного окна: 10:00 -> 10:15
	req := rescheduleRequest()
	req.StartTime = "10:15"

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, checker.lastExcludeID)
	assert.Equal(t, int64(1), *checker.lastExcludeID)
}

func TestExecute_NoCapacityOnTargetSlot(t *testing.T) {
	other := &domain.Booking{
		ID: 2, ServicePointID: 1, BookingDate: bookingDay,
		StartTime: types.TimeString("12:00"), DurationMinutes: 60,
		Status: domain.StatusConfirmed,
	}
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: existingBooking(domain.StatusPending)}}
	checker := &fakeChecker{totalPosts: 1, opensAt: "09:00", closesAt: "18:00", others: []*domain.Booking{other}}
	uc := newUseCase(repo, checker)

	_, err := uc.Execute(context.Background(), rescheduleRequest())
	assert.ErrorIs(t, err, ErrNoCapacity)

	// Бронирование осталось на прежнем слоте
	assert.Equal(t, "10:00", repo.bookings[1].StartTime.String())
}

func TestExecute_StatusGate(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCanceledByClient,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: existingBooking(status)}}
			uc := newUseCase(repo, &fakeChecker{totalPosts: 2, opensAt: "09:00", closesAt: "18:00"})

			_, err := uc.Execute(context.Background(), rescheduleRequest())
			assert.ErrorIs(t, err, ErrNotReschedulable)
		})
	}
}

func TestExecute_ForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: existingBooking(domain.StatusPending)}}
	uc := newUseCase(repo, &fakeChecker{totalPosts: 2, opensAt: "09:00", closesAt: "18:00"})

	req := rescheduleRequest()
	req.ClientID = ptr.Ptr(int64(99))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
	uc := newUseCase(repo, &fakeChecker{totalPosts: 2, opensAt: "09:00", closesAt: "18:00"})

	_, err := uc.Execute(context.Background(), rescheduleRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_PastTarget(t *testing.T) {
	repo := &fakeBookingRepo{bookings: map[int64]*domain.Booking{1: existingBooking(domain.StatusPending)}}
	uc := newUseCase(repo, &fakeChecker{totalPosts: 2, opensAt: "09:00", closesAt: "18:00"})

	req := rescheduleRequest()
	req.Date = time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
