package update_booking_status

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	bookingsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный целевой статус"
	msgBookingNotFound    = "бронирование не найдено"
	msgInvalidTransition  = "переход в этот статус из текущего невозможен"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"` // confirmed | in_progress | completed | no_show
}

// BookingStatusResponse HTTP response model
type BookingStatusResponse struct {
	ID             int64  `json:"id"`
	ServicePointID int64  `json:"servicePointId"`
	Status         string `json:"status"`
	UpdatedAt      string `json:"updatedAt"`
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

// Handle PATCH /api/v1/bookings/{bookingId}/status
// Переходы партнерской стороны; отмены идут через отдельный endpoint.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	var result *domain.Booking
	switch status {
	case domain.StatusConfirmed:
		result, err = h.service.Confirm(r.Context(), bookingID)
	case domain.StatusInProgress:
		result, err = h.service.Start(r.Context(), bookingID)
	case domain.StatusCompleted:
		result, err = h.service.Complete(r.Context(), bookingID)
	case domain.StatusNoShow:
		result, err = h.service.MarkNoShow(r.Context(), bookingID)
	default:
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/status - Invalid transition: booking_id=%d, target=%s",
				bookingID, status)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, &BookingStatusResponse{
		ID:             result.ID,
		ServicePointID: result.ServicePointID,
		Status:         string(result.Status),
		UpdatedAt:      result.UpdatedAt.Format(time.RFC3339),
	})
}
