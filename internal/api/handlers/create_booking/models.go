package create_booking

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	createBooking "github.com/dmarkin/TirePoint-SchedulingService/internal/usecase/create_booking"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServicePointID  int64   `json:"servicePointId"`
	CarID           *int64  `json:"carId,omitempty"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
	BookingDate     string  `json:"bookingDate"` // "2026-04-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	TotalPrice      float64 `json:"totalPrice,omitempty"`
	Comment         *string `json:"comment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ServicePointID  int64   `json:"servicePointId"`
	ClientID        *int64  `json:"clientId,omitempty"`
	CarID           *int64  `json:"carId,omitempty"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalPrice      float64 `json:"totalPrice"`
	AvailablePosts  int     `json:"availablePosts"`
	TotalPosts      int     `json:"totalPosts"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// clientID приходит из контекста аутентификации, nil - гостевое бронирование.
func (r *CreateBookingRequest) ToUseCaseRequest(clientID *int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServicePointID:  r.ServicePointID,
		ClientID:        clientID,
		CarID:           r.CarID,
		CategoryID:      r.CategoryID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		TotalPrice:      r.TotalPrice,
		Comment:         r.Comment,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ServicePointID:  resp.ServicePointID,
		ClientID:        resp.ClientID,
		CarID:           resp.CarID,
		CategoryID:      resp.CategoryID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		TotalPrice:      resp.TotalPrice,
		AvailablePosts:  resp.AvailablePosts,
		TotalPosts:      resp.TotalPosts,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
