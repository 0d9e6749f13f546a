package cancel_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/middleware"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	bookingsService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInitiator   = "некорректный инициатор отмены"
	msgMissingReason      = "причина отмены обязательна для партнерской отмены"
	msgBookingNotFound    = "бронирование не найдено"
	msgReasonNotFound     = "причина отмены не найдена"
	msgInvalidTransition  = "бронирование в текущем статусе нельзя отменить"
	msgTooLateToCancel    = "срок бесплатной отмены истек"
	msgPermissionDenied   = "нет прав на управление этим бронированием"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Initiator string  `json:"initiator"` // client | partner
	ReasonID  *int64  `json:"reasonId,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// CanceledBookingResponse HTTP response model
type CanceledBookingResponse struct {
	ID         int64   `json:"id"`
	Status     string  `json:"status"`
	ReasonID   *int64  `json:"reasonId,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	CanceledAt *string `json:"canceledAt,omitempty"`
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

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	var result *domain.Booking

	switch req.Initiator {
	case "client":
		clientID := middleware.ClientIDFromContext(r.Context())
		result, err = h.service.CancelByClient(r.Context(), bookingID, clientID, req.Comment)

	case "partner":
		if req.ReasonID == nil {
			handlers.RespondBadRequest(w, msgMissingReason)
			return
		}
		result, err = h.service.CancelByPartner(r.Context(), bookingID, *req.ReasonID, req.Comment)

	default:
		handlers.RespondBadRequest(w, msgInvalidInitiator)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrReasonNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Reason not found: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgReasonNotFound)

		case errors.Is(err, bookingsService.ErrCancellationTooLate):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cancellation window passed: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgTooLateToCancel)

		case errors.Is(err, bookingsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, bookingsService.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Permission denied: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusForbidden, msgPermissionDenied)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &CanceledBookingResponse{
		ID:       result.ID,
		Status:   string(result.Status),
		ReasonID: result.CancellationReasonID,
		Comment:  result.CancellationComment,
	}
	if result.CanceledAt != nil {
		canceledAt := result.CanceledAt.Format(time.RFC3339)
		response.CanceledAt = &canceledAt
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking canceled: booking_id=%d, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, response)
}
