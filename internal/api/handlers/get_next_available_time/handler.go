package get_next_available_time

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
	msgInvalidAfter    = "некорректный параметр after, ожидается YYYY-MM-DD"
	msgInvalidTime     = "некорректный формат времени, ожидается HH:MM"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidCategory = "некорректный идентификатор категории"
	msgPointNotFound   = "сервисная точка не найдена"
)

// NextAvailableResponse HTTP response model.
// Слот null означает, что в горизонте поиска свободного времени нет.
type NextAvailableResponse struct {
	Slot *NextSlotResponse `json:"slot"`
}

// NextSlotResponse найденный слот
type NextSlotResponse struct {
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	AvailablePosts int    `json:"availablePosts"`
	TotalPosts     int    `json:"totalPosts"`
}

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

// Handle GET /api/v1/service-points/{pointId}/next-available-time?after=&time=&duration=&categoryId=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	// after опционален, по умолчанию поиск от текущего момента.
	// Дата без времени трактуется как начало дня.
	after := h.timeProvider.Now()
	if raw := r.URL.Query().Get("after"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAfter)
			return
		}
		after = parsed
	}

	// time уточняет момент внутри дня after
	if raw := r.URL.Query().Get("time"); raw != "" {
		afterTime, err := types.NewTimeStringFromString(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		minutes, err := afterTime.MinutesFromMidnight()
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		after = time.Date(after.Year(), after.Month(), after.Day(), 0, 0, 0, 0, after.Location()).
			Add(time.Duration(minutes) * time.Minute)
	}

	duration, err := handlers.QueryInt(r, "duration")
	if err != nil || duration == nil || *duration <= 0 {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCategory)
		return
	}

	slot, err := h.calculator.NextAvailable(r.Context(), pointID, after, categoryID, *duration)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/next-available-time - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /service-points/{id}/next-available-time - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /service-points/{id}/next-available-time - Failed: point_id=%d, error=%v", pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &NextAvailableResponse{}
	if slot != nil {
		response.Slot = &NextSlotResponse{
			Date:           slot.Date.Format(domain.DateFormat),
			StartTime:      slot.StartTime.String(),
			AvailablePosts: slot.AvailablePosts,
			TotalPosts:     slot.TotalPosts,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
