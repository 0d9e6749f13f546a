package update_schedule

import (
	"errors"
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
	scheduleService "github.com/dmarkin/TirePoint-SchedulingService/internal/service/schedule"
)

const (
	msgInvalidPointID     = "некорректный идентификатор сервисной точки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPointNotFound      = "сервисная точка не найдена"
	msgInvalidHours       = "некорректные рабочие часы"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleSetTemplate PUT /api/v1/service-points/{pointId}/schedule/templates
func (h *Handler) HandleSetTemplate(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	var req TemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-points/{id}/schedule/templates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tpl, err := req.ToDomainTemplate(pointID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	saved, err := h.service.SetTemplate(r.Context(), tpl)
	if err != nil {
		h.respondScheduleError(w, "PUT /service-points/{id}/schedule/templates", pointID, err)
		return
	}

	h.logger.Info("PUT /service-points/{id}/schedule/templates - Template saved: point_id=%d, weekday=%d",
		pointID, req.Weekday)
	handlers.RespondJSON(w, http.StatusOK, FromDomainTemplate(saved))
}

// HandleSetException PUT /api/v1/service-points/{pointId}/schedule/exceptions
func (h *Handler) HandleSetException(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	var req ExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-points/{id}/schedule/exceptions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	exc, err := req.ToDomainException(pointID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	saved, err := h.service.SetException(r.Context(), exc)
	if err != nil {
		h.respondScheduleError(w, "PUT /service-points/{id}/schedule/exceptions", pointID, err)
		return
	}

	h.logger.Info("PUT /service-points/{id}/schedule/exceptions - Exception saved: point_id=%d, date=%s",
		pointID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromDomainException(saved))
}

// HandleDeleteException DELETE /api/v1/service-points/{pointId}/schedule/exceptions?date=
func (h *Handler) HandleDeleteException(w http.ResponseWriter, r *http.Request) {
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

	if err := h.service.RemoveException(r.Context(), pointID, date); err != nil {
		h.respondScheduleError(w, "DELETE /service-points/{id}/schedule/exceptions", pointID, err)
		return
	}

	h.logger.Info("DELETE /service-points/{id}/schedule/exceptions - Exception removed: point_id=%d, date=%s",
		pointID, date.Format(domain.DateFormat))
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetWeek GET /api/v1/service-points/{pointId}/schedule
func (h *Handler) HandleGetWeek(w http.ResponseWriter, r *http.Request) {
	pointID, err := handlers.PathInt64(r, "pointId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPointID)
		return
	}

	templates, err := h.service.GetWeek(r.Context(), pointID)
	if err != nil {
		h.respondScheduleError(w, "GET /service-points/{id}/schedule", pointID, err)
		return
	}

	response := &WeekResponse{Templates: make([]TemplateResponse, 0, len(templates))}
	for _, tpl := range templates {
		response.Templates = append(response.Templates, FromDomainTemplate(tpl))
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}

func (h *Handler) respondScheduleError(w http.ResponseWriter, op string, pointID int64, err error) {
	switch {
	case errors.Is(err, scheduleService.ErrPointNotFound):
		h.logger.Warn("%s - Point not found: point_id=%d", op, pointID)
		handlers.RespondNotFound(w, msgPointNotFound)

	case errors.Is(err, scheduleService.ErrInvalidHours):
		h.logger.Warn("%s - Invalid hours: point_id=%d, error=%v", op, pointID, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidHours)

	case errors.Is(err, scheduleService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: point_id=%d, error=%v", op, pointID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	default:
		h.logger.Error("%s - Failed: point_id=%d, error=%v", op, pointID, err)
		handlers.RespondInternalError(w)
	}
}
