package update_schedule

import (
	"fmt"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// TemplateRequest HTTP модель шаблона на день недели.
// Weekday в нотации time.Weekday: 0 = воскресенье ... 6 = суббота.
type TemplateRequest struct {
	Weekday   int     `json:"weekday"`
	IsWorking bool    `json:"isWorking"`
	OpensAt   *string `json:"opensAt,omitempty"`  // "09:00"
	ClosesAt  *string `json:"closesAt,omitempty"` // "18:00"
}

// ExceptionRequest HTTP модель исключения на дату
type ExceptionRequest struct {
	Date      string  `json:"date"` // "2026-04-15"
	IsWorking bool    `json:"isWorking"`
	OpensAt   *string `json:"opensAt,omitempty"`
	ClosesAt  *string `json:"closesAt,omitempty"`
}

// TemplateResponse HTTP модель сохраненного шаблона
type TemplateResponse struct {
	ID        int64   `json:"id"`
	Weekday   int     `json:"weekday"`
	IsWorking bool    `json:"isWorking"`
	OpensAt   *string `json:"opensAt,omitempty"`
	ClosesAt  *string `json:"closesAt,omitempty"`
}

// ExceptionResponse HTTP модель сохраненного исключения
type ExceptionResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	IsWorking bool    `json:"isWorking"`
	OpensAt   *string `json:"opensAt,omitempty"`
	ClosesAt  *string `json:"closesAt,omitempty"`
}

// WeekResponse недельное расписание точки
type WeekResponse struct {
	Templates []TemplateResponse `json:"templates"`
}

// ToDomainTemplate конвертирует HTTP запрос в доменную модель
func (r *TemplateRequest) ToDomainTemplate(servicePointID int64) (*domain.ScheduleTemplate, error) {
	if r.Weekday < 0 || r.Weekday > 6 {
		return nil, fmt.Errorf("weekday must be in range 0-6, got %d", r.Weekday)
	}

	opensAt, closesAt, err := parseHours(r.OpensAt, r.ClosesAt)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleTemplate{
		ServicePointID: servicePointID,
		Weekday:        time.Weekday(r.Weekday),
		IsWorking:      r.IsWorking,
		OpensAt:        opensAt,
		ClosesAt:       closesAt,
	}, nil
}

// ToDomainException конвертирует HTTP запрос в доменную модель
func (r *ExceptionRequest) ToDomainException(servicePointID int64) (*domain.ScheduleException, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	opensAt, closesAt, err := parseHours(r.OpensAt, r.ClosesAt)
	if err != nil {
		return nil, err
	}

	return &domain.ScheduleException{
		ServicePointID: servicePointID,
		Date:           date,
		IsWorking:      r.IsWorking,
		OpensAt:        opensAt,
		ClosesAt:       closesAt,
	}, nil
}

func parseHours(opensAt, closesAt *string) (*types.TimeString, *types.TimeString, error) {
	var opens, closes *types.TimeString

	if opensAt != nil {
		parsed, err := types.NewTimeStringFromString(*opensAt)
		if err != nil {
			return nil, nil, err
		}
		opens = &parsed
	}
	if closesAt != nil {
		parsed, err := types.NewTimeStringFromString(*closesAt)
		if err != nil {
			return nil, nil, err
		}
		closes = &parsed
	}

	return opens, closes, nil
}

// FromDomainTemplate конвертирует доменную модель в HTTP response
func FromDomainTemplate(tpl *domain.ScheduleTemplate) TemplateResponse {
	return TemplateResponse{
		ID:        tpl.ID,
		Weekday:   int(tpl.Weekday),
		IsWorking: tpl.IsWorking,
		OpensAt:   timeStringPtr(tpl.OpensAt),
		ClosesAt:  timeStringPtr(tpl.ClosesAt),
	}
}

// FromDomainException конвертирует доменную модель в HTTP response
func FromDomainException(exc *domain.ScheduleException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:        exc.ID,
		Date:      exc.Date.Format(domain.DateFormat),
		IsWorking: exc.IsWorking,
		OpensAt:   timeStringPtr(exc.OpensAt),
		ClosesAt:  timeStringPtr(exc.ClosesAt),
	}
}

func timeStringPtr(t *types.TimeString) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
