package get_point_bookings

import (
	"net/http"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

const (
	msgInvalidPointID = "некорректный идентификатор сервисной точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus  = "некорректный статус"
)

// BookingItem элемент списка бронирований точки
type BookingItem struct {
	ID              int64  `json:"id"`
	ClientID        *int64 `json:"clientId,omitempty"`
	CategoryID      *int64 `json:"categoryId,omitempty"`
	BookingDate     string `json:"bookingDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// PointBookingsResponse HTTP response model
type PointBookingsResponse struct {
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

// Handle GET /api/v1/service-points/{pointId}/bookings?startDate=&endDate=&status=&includeReleased=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	filter := domain.PointBookingsFilter{
		ServicePointID:  pointID,
		IncludeReleased: r.URL.Query().Get("includeReleased") == "true",
	}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.StartDate = &startDate
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		filter.EndDate = &endDate
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseBookingStatus(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		filter.Status = &status
	}

	bookings, err := h.service.GetByPoint(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /service-points/{id}/bookings - Failed: point_id=%d, error=%v", pointID, err)
		handlers.RespondInternalError(w)
		return
	}

	response := &PointBookingsResponse{Bookings: make([]BookingItem, 0, len(bookings))}
	for _, b := range bookings {
		response.Bookings = append(response.Bookings, BookingItem{
			ID:              b.ID,
			ClientID:        b.ClientID,
			CategoryID:      b.CategoryID,
			BookingDate:     b.BookingDate.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          string(b.Status),
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
