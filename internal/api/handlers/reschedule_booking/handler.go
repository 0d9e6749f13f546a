package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/middleware"
	rescheduleBooking "github.com/dmarkin/TirePoint-SchedulingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный идентификатор бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgBookingNotFound     = "бронирование не найдено"
	msgNotReschedulable    = "бронирование в текущем статусе нельзя перенести"
	msgPermissionDenied    = "нет прав на управление этим бронированием"
	msgOutsideWorkingHours = "запрошенное время вне рабочих часов точки"
	msgNoCapacity          = "все посты на это время заняты"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgTooLateToBook       = "запрошенное время уже прошло"
	msgInvalidInput        = "некорректные данные переноса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	clientID := middleware.ClientIDFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(bookingID, clientID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrPermissionDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Permission denied: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusForbidden, msgPermissionDenied)

		case errors.Is(err, rescheduleBooking.ErrNoCapacity):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - No capacity: booking_id=%d, date=%s, time=%s",
				bookingID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Outside working hours: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, date=%s, time=%s",
		result.ID, result.BookingDate, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
