package get_availability

import (
	"errors"
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

const (
	msgInvalidPointID    = "некорректный идентификатор сервисной точки"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration   = "некорректная длительность"
	msgInvalidCategoryID = "некорректный идентификатор категории"
	msgInvalidBookingID  = "некорректный идентификатор бронирования"
	msgPointNotFound     = "сервисная точка не найдена"
)

type Handler struct {
	calculator AvailabilityCalculator
	logger     Logger
}

func NewHandler(calculator AvailabilityCalculator, logger Logger) *Handler {
	return &Handler{
		calculator: calculator,
		logger:     logger,
	}
}

// Handle GET /api/v1/service-points/{pointId}/availability?date=&time=&duration=&categoryId=&excludeBookingId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil || duration == nil || *duration <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	excludeBookingID, err := handlers.QueryInt64(r, "excludeBookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	check, err := h.calculator.CheckAt(r.Context(), availability.CheckRequest{
		ServicePointID:   pointID,
		Date:             date,
		StartTime:        startTime,
		DurationMinutes:  *duration,
		CategoryID:       categoryID,
		ExcludeBookingID: excludeBookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/availability - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /service-points/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /service-points/{id}/availability - Failed: point_id=%d, error=%v", pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromSlotCheck(check))
}
