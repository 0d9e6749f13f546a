package domain

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// ScheduleTemplate недельный шаблон рабочих часов точки.
// Инвариант: не более одной записи на пару (точка, день недели).
type ScheduleTemplate struct {
	ID             int64
	ServicePointID int64
	Weekday        time.Weekday
	IsWorking      bool
	OpensAt        *types.TimeString
	ClosesAt       *types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Day возвращает шаблон как расписание дня
func (t *ScheduleTemplate) Day() DaySchedule {
	return DaySchedule{IsWorking: t.IsWorking, OpensAt: t.OpensAt, ClosesAt: t.ClosesAt}
}

// ScheduleException переопределение шаблона на конкретную календарную дату
// (закрыто либо особые часы). Инвариант: не более одной записи на (точка, дата).
type ScheduleException struct {
	ID             int64
	ServicePointID int64
	Date           time.Time
	IsWorking      bool
	OpensAt        *types.TimeString
	ClosesAt       *types.TimeString
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Day возвращает исключение как расписание дня
func (e *ScheduleException) Day() DaySchedule {
	return DaySchedule{IsWorking: e.IsWorking, OpensAt: e.OpensAt, ClosesAt: e.ClosesAt}
}

// ResolvedDay результат резолюции расписания точки на дату
type ResolvedDay struct {
	IsWorking bool
	OpensAt   types.TimeString
	ClosesAt  types.TimeString
}

// Contains проверяет, что интервал [start, end) целиком внутри рабочих часов
func (r ResolvedDay) Contains(start, end types.TimeString) bool {
	if !r.IsWorking {
		return false
	}
	return !start.IsBefore(r.OpensAt) && !end.IsAfter(r.ClosesAt)
}
