package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// OperationalStatus операционный статус сервисной точки
type OperationalStatus string

const (
	PointWorking           OperationalStatus = "working"
	PointTemporarilyClosed OperationalStatus = "temporarily_closed"
	PointMaintenance       OperationalStatus = "maintenance"
	PointSuspended         OperationalStatus = "suspended"
)

// ServicePoint сервисная точка - физическая локация с постами обслуживания
type ServicePoint struct {
	ID                         int64
	PartnerID                  int64
	Name                       string
	PostCount                  int // количество постов по умолчанию (для автосоздания)
	DefaultSlotDurationMinutes int
	IsActive                   bool
	OperationalStatus          OperationalStatus
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// AcceptsBookings возвращает true, если точка принимает бронирования.
// Закрытие точки - смена статуса, записи не удаляются.
func (p *ServicePoint) AcceptsBookings() bool {
	return p.IsActive && p.OperationalStatus == PointWorking
}

// ServicePost один пост обслуживания - единица физической ёмкости точки
type ServicePost struct {
	ID                  int64
	ServicePointID      int64
	SequenceNumber      int // уникален в пределах точки
	SlotDurationMinutes int
	IsActive            bool
	CategoryID          *int64          // nil = пост без специализации
	CustomSchedule      *WeeklySchedule // nil = пост наследует расписание точки
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// MatchesCategory проверяет, подходит ли пост под запрошенную категорию.
// Пост без ограничения обслуживает любую категорию; пост с ограничением -
// только свою. Запрос без категории принимает любой пост.
func (p *ServicePost) MatchesCategory(categoryID *int64) bool {
	if p.CategoryID == nil || categoryID == nil {
		return true
	}
	return *p.CategoryID == *categoryID
}

// DaySchedule рабочие часы одного дня
type DaySchedule struct {
	IsWorking bool              `json:"isWorking"`
	OpensAt   *types.TimeString `json:"opensAt,omitempty"`
	ClosesAt  *types.TimeString `json:"closesAt,omitempty"`
}

// Validate проверяет корректность часов: у рабочего дня должны быть заданы
// оба времени, и закрытие строго позже открытия
func (d *DaySchedule) Validate() error {
	if !d.IsWorking {
		return nil
	}
	if d.OpensAt == nil || d.ClosesAt == nil {
		return errors.New("working day requires both opening and closing time")
	}
	if err := d.OpensAt.Validate(); err != nil {
		return err
	}
	if err := d.ClosesAt.Validate(); err != nil {
		return err
	}
	if !d.OpensAt.IsBefore(*d.ClosesAt) {
		return fmt.Errorf("closing time %s must be after opening time %s", *d.ClosesAt, *d.OpensAt)
	}
	return nil
}

// WeeklySchedule недельное расписание поста, переопределяющее расписание точки.
// Хранится в БД как JSONB.
type WeeklySchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday возвращает расписание на указанный день недели
func (w *WeeklySchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsWorking: false}
	}
}

// Validate проверяет расписание каждого дня недели
func (w *WeeklySchedule) Validate() error {
	days := map[string]DaySchedule{
		"monday": w.Monday, "tuesday": w.Tuesday, "wednesday": w.Wednesday,
		"thursday": w.Thursday, "friday": w.Friday, "saturday": w.Saturday,
		"sunday": w.Sunday,
	}
	for name, day := range days {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Value реализует driver.Valuer для записи JSONB.
// Pointer receiver: nil указатель уходит в БД как NULL
// (database/sql возвращает NULL для nil указателя с Valuer).
func (w *WeeklySchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

// Scan реализует sql.Scanner для чтения JSONB
func (w *WeeklySchedule) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	case nil:
		return nil
	default:
		return fmt.Errorf("domain.WeeklySchedule: cannot scan %T", src)
	}
}
