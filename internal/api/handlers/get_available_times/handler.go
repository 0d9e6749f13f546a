package get_available_times

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

const (
	msgInvalidPointID  = "некорректный идентификатор сервисной точки"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidCategory = "некорректный идентификатор категории"
	msgPointNotFound   = "сервисная точка не найдена"
)

type Handler struct {
	calculator   AvailabilityCalculator
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(calculator AvailabilityCalculator, logger Logger) *Handler {
	return &Handler{
		calculator:   calculator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Handle GET /api/v1/service-points/{pointId}/available-times?date=&duration=&categoryId=
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

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil || (duration != nil && *duration <= 0) {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCategory)
		return
	}

	// Запрос с категорией считается по пулу постов категории
	var slots []domain.AvailableSlot
	if categoryID != nil && duration == nil {
		slots, err = h.calculator.SlotsForCategory(r.Context(), pointID, date, *categoryID)
	} else {
		slots, err = h.calculator.TimesForDate(r.Context(), pointID, date, categoryID, duration)
	}
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/available-times - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /service-points/{id}/available-times - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /service-points/{id}/available-times - Failed: point_id=%d, error=%v", pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Для сегодняшней даты уже прошедшие времена не предлагаем.
	// Калькулятор о текущем времени не знает, фильтрация живет здесь.
	slots = h.filterPastTimes(slots, date)

	handlers.RespondJSON(w, http.StatusOK, FromSlots(date.Format(domain.DateFormat), slots))
}

func (h *Handler) filterPastTimes(slots []domain.AvailableSlot, date time.Time) []domain.AvailableSlot {
	now := h.timeProvider.Now()
	if date.Year() != now.Year() || date.Month() != now.Month() || date.Day() != now.Day() {
		return slots
	}

	currentTime := types.NewTimeString(now)
	filtered := make([]domain.AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.IsBefore(currentTime) {
			continue
		}
		filtered = append(filtered, slot)
	}
	return filtered
}
