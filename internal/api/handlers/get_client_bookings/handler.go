package get_client_bookings

import (
	"net/http"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

const (
	msgInvalidClientID = "некорректный идентификатор клиента"
	msgInvalidStatus   = "некорректный статус"
)

// BookingItem элемент списка бронирований клиента
type BookingItem struct {
	ID              int64   `json:"id"`
	ServicePointID  int64   `json:"servicePointId"`
	CategoryID      *int64  `json:"categoryId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedAt       string  `json:"createdAt"`
}

// ClientBookingsResponse HTTP response model
type ClientBookingsResponse struct {
	Bookings []BookingItem `json:"bookings"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var status *domain.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseBookingStatus(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &parsed
	}

	bookings, err := h.service.GetByClient(r.Context(), clientID, status)
	if err != nil {
		h.logger.Error("GET /clients/{id}/bookings - Failed: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &ClientBookingsResponse{Bookings: make([]BookingItem, 0, len(bookings))}
	for _, b := range bookings {
		response.Bookings = append(response.Bookings, BookingItem{
			ID:              b.ID,
			ServicePointID:  b.ServicePointID,
			CategoryID:      b.CategoryID,
			BookingDate:     b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			TotalPrice:      b.TotalPrice,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
