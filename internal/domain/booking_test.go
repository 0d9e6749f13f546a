package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBooking_OccupiesPost(t *testing.T) {
	occupying := []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted}
	for _, status := range occupying {
		b := &Booking{Status: status}
		assert.True(t, b.OccupiesPost(), "status %s must occupy a post", status)
	}

	released := []BookingStatus{StatusCanceledByClient, StatusCanceledByPartner, StatusNoShow}
	for _, status := range released {
		b := &Booking{Status: status}
		assert.False(t, b.OccupiesPost(), "status %s must release the post", status)
	}
}

func TestBooking_EndTimeResolved(t *testing.T) {
	explicit := types.TimeString("11:00")
	b := &Booking{StartTime: "10:00", DurationMinutes: 30, EndTime: &explicit}
	end, err := b.EndTimeResolved()
	require.NoError(t, err)
	assert.Equal(t, "11:00", end.String())

	b = &Booking{StartTime: "10:00", DurationMinutes: 45}
	end, err = b.EndTimeResolved()
	require.NoError(t, err)
	assert.Equal(t, "10:45", end.String())
}

func TestBooking_ConsumesFromCategoryPool(t *testing.T) {
	// Бронирование без категории конкурирует с любым пулом
	general := &Booking{}
	assert.True(t, general.ConsumesFromCategoryPool(nil))
	assert.True(t, general.ConsumesFromCategoryPool(int64Ptr(5)))

	// Бронирование с категорией конкурирует со своим пулом и общим
	tires := &Booking{CategoryID: int64Ptr(5)}
	assert.True(t, tires.ConsumesFromCategoryPool(nil))
	assert.True(t, tires.ConsumesFromCategoryPool(int64Ptr(5)))
	assert.False(t, tires.ConsumesFromCategoryPool(int64Ptr(7)))
}

func TestBooking_IsGuest(t *testing.T) {
	assert.True(t, (&Booking{}).IsGuest())
	assert.False(t, (&Booking{ClientID: int64Ptr(1)}).IsGuest())
}

func TestResolvedDay_Contains(t *testing.T) {
	day := ResolvedDay{IsWorking: true, OpensAt: "09:00", ClosesAt: "18:00"}

	assert.True(t, day.Contains("09:00", "09:30"))
	assert.True(t, day.Contains("17:30", "18:00"))
	assert.False(t, day.Contains("08:30", "09:00"))
	assert.False(t, day.Contains("17:45", "18:15"))

	closed := ResolvedDay{IsWorking: false}
	assert.False(t, closed.Contains("10:00", "10:30"))
}

func TestDaySchedule_Validate(t *testing.T) {
	opens := types.TimeString("09:00")
	closes := types.TimeString("18:00")

	valid := DaySchedule{IsWorking: true, OpensAt: &opens, ClosesAt: &closes}
	assert.NoError(t, valid.Validate())

	// Закрытие не позже открытия - ошибка конфигурации
	inverted := DaySchedule{IsWorking: true, OpensAt: &closes, ClosesAt: &opens}
	assert.Error(t, inverted.Validate())

	equal := DaySchedule{IsWorking: true, OpensAt: &opens, ClosesAt: &opens}
	assert.Error(t, equal.Validate())

	// Рабочий день без часов - ошибка
	missing := DaySchedule{IsWorking: true}
	assert.Error(t, missing.Validate())

	// Нерабочий день часов не требует
	dayOff := DaySchedule{IsWorking: false}
	assert.NoError(t, dayOff.Validate())
}
