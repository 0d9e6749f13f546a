package domain

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCanceledByClient  BookingStatus = "canceled_by_client"
	StatusCanceledByPartner BookingStatus = "canceled_by_partner"
	StatusNoShow            BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// ParseBookingStatus валидирует строку статуса и возвращает значение enum
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCanceledByClient, StatusCanceledByPartner, StatusNoShow:
		return status, nil
	default:
		return "", ErrUnknownStatus
	}
}

// Booking represents a reservation of post capacity at a service point
type Booking struct {
	ID             int64
	ServicePointID int64
	ClientID       *int64 // nil = гостевое бронирование
	CarID          *int64
	CategoryID     *int64 // nil = общий пул постов
	BookingDate    time.Time
	StartTime      types.TimeString
	EndTime        *types.TimeString // nil, пока пост не назначен
	DurationMinutes int
	Status         BookingStatus
	PaymentStatus  PaymentStatus
	TotalPrice     float64

	CancellationReasonID *int64
	CancellationComment  *string
	CanceledAt           *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesPost returns true if the booking consumes post capacity.
// Canceled and no-show bookings release their post.
func (b *Booking) OccupiesPost() bool {
	return b.Status != StatusCanceledByClient &&
		b.Status != StatusCanceledByPartner &&
		b.Status != StatusNoShow
}

// IsCanceled returns true if the booking has been canceled by either side
func (b *Booking) IsCanceled() bool {
	return b.Status == StatusCanceledByClient || b.Status == StatusCanceledByPartner
}

// IsTerminal returns true if no further transitions are possible
func (b *Booking) IsTerminal() bool {
	return IsTerminalStatus(b.Status)
}

// IsGuest returns true for a booking without a registered client
func (b *Booking) IsGuest() bool {
	return b.ClientID == nil
}

// EndTimeResolved returns the booking's end time, deriving it from the
// duration when the explicit end time is not yet assigned.
func (b *Booking) EndTimeResolved() (types.TimeString, error) {
	if b.EndTime != nil {
		return *b.EndTime, nil
	}
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// ConsumesFromCategoryPool возвращает true, если бронирование конкурирует
// за посты пула категории categoryID. Бронирование без категории занимает
// пост из общего пула и пересекается с любым пулом; бронирование с
// категорией конкурирует только со своим пулом и общим.
func (b *Booking) ConsumesFromCategoryPool(categoryID *int64) bool {
	if b.CategoryID == nil || categoryID == nil {
		return true
	}
	return *b.CategoryID == *categoryID
}

// CancellationReason categorized cancellation reason reference data
type CancellationReason struct {
	ID               int64
	Title            string
	VisibleToClient  bool
	VisibleToPartner bool
}

// PointBookingsFilter фильтр для выборки бронирований сервисной точки
type PointBookingsFilter struct {
	ServicePointID  int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeReleased bool           // Включать ли отмененные и no-show бронирования
}
