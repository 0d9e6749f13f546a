package get_day_occupancy

import (
	"errors"
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/service/availability"
)

const (
	msgInvalidPointID = "некорректный идентификатор сервисной точки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPointNotFound  = "сервисная точка не найдена"
)

// IntervalResponse занятость одного интервала сетки
type IntervalResponse struct {
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	AvailablePosts  int     `json:"availablePosts"`
	TotalPosts      int     `json:"totalPosts"`
	OccupancyRate   float64 `json:"occupancyRate"`
}

// OccupancyResponse HTTP response model
type OccupancyResponse struct {
	Date          string             `json:"date"`
	IsWorking     bool               `json:"isWorking"`
	OpensAt       string             `json:"opensAt,omitempty"`
	ClosesAt      string             `json:"closesAt,omitempty"`
	TotalPosts    int                `json:"totalPosts"`
	BusyIntervals int                `json:"busyIntervals"`
	FreeIntervals int                `json:"freeIntervals"`
	Intervals     []IntervalResponse `json:"intervals"`
}

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

// Handle GET /api/v1/service-points/{pointId}/occupancy?date=
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

	occupancy, err := h.calculator.DayOccupancy(r.Context(), pointID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPointNotFound):
			h.logger.Warn("GET /service-points/{id}/occupancy - Point not found: point_id=%d", pointID)
			handlers.RespondNotFound(w, msgPointNotFound)

		case errors.Is(err, availability.ErrPointClosed):
			// Нерабочий день - валидный ответ, а не ошибка
			handlers.RespondJSON(w, http.StatusOK, &OccupancyResponse{
				Date:      date.Format(domain.DateFormat),
				IsWorking: false,
				Intervals: []IntervalResponse{},
			})

		default:
			h.logger.Error("GET /service-points/{id}/occupancy - Failed: point_id=%d, error=%v", pointID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := &OccupancyResponse{
		Date:          date.Format(domain.DateFormat),
		IsWorking:     true,
		OpensAt:       occupancy.OpensAt.String(),
		ClosesAt:      occupancy.ClosesAt.String(),
		TotalPosts:    occupancy.TotalPosts,
		BusyIntervals: occupancy.BusyIntervals,
		FreeIntervals: occupancy.FreeIntervals,
		Intervals:     make([]IntervalResponse, 0, len(occupancy.Intervals)),
	}
	for i := range occupancy.Intervals {
		interval := &occupancy.Intervals[i]
		response.Intervals = append(response.Intervals, IntervalResponse{
			StartTime:       interval.StartTime.String(),
			DurationMinutes: interval.DurationMinutes,
			AvailablePosts:  interval.AvailablePosts,
			TotalPosts:      interval.TotalPosts,
			OccupancyRate:   interval.OccupancyRate(),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
