package get_booking

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServicePointID  int64   `json:"servicePointId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	CarID           *int64  `json:"carId,omitempty"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         *string `json:"endTime,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalPrice      float64 `json:"totalPrice"`
	ReasonID        *int64  `json:"cancellationReasonId,omitempty"`
	Comment         *string `json:"cancellationComment,omitempty"`
	CanceledAt      *string `json:"canceledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	response := &BookingResponse{
		ID:              b.ID,
		ServicePointID:  b.ServicePointID,
		ClientID:        b.ClientID,
		CarID:           b.CarID,
		CategoryID:      b.CategoryID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		TotalPrice:      b.TotalPrice,
		ReasonID:        b.CancellationReasonID,
		Comment:         b.CancellationComment,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
	if b.EndTime != nil {
		endTime := b.EndTime.String()
		response.EndTime = &endTime
	}
	if b.CanceledAt != nil {
		canceledAt := b.CanceledAt.Format(time.RFC3339)
		response.CanceledAt = &canceledAt
	}
	return response
}
