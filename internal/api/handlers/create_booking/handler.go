package create_booking

import (
	"errors"
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/middleware"
	createBooking "github.com/dmarkin/TirePoint-SchedulingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgPointNotFound       = "сервисная точка не найдена"
	msgOutsideWorkingHours = "запрошенное время вне рабочих часов точки"
	msgNoCapacity          = "все посты на это время заняты"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgTooLateToBook       = "запрошенное время уже прошло"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	clientID := middleware.ClientIDFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrNoCapacity):
			h.logger.Warn("POST /bookings - No capacity: point_id=%d, date=%s, time=%s",
				req.ServicePointID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgNoCapacity)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: point_id=%d, date=%s, time=%s",
				req.ServicePointID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrPointNotFound):
			h.logger.Warn("POST /bookings - Point not found: point_id=%d", req.ServicePointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: point_id=%d, date=%s",
				req.ServicePointID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: point_id=%d, time=%s",
				req.ServicePointID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: point_id=%d, error=%v",
				req.ServicePointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, point_id=%d",
		result.ID, req.ServicePointID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
