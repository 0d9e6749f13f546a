package get_cancellation_reasons

import (
	"net/http"

	"github.com/dmarkin/TirePoint-SchedulingService/internal/api/handlers"
)

// ReasonResponse элемент справочника причин отмены
type ReasonResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	VisibleToClient  bool   `json:"visibleToClient"`
	VisibleToPartner bool   `json:"visibleToPartner"`
}

// ReasonsResponse HTTP response model
type ReasonsResponse struct {
	Reasons []ReasonResponse `json:"reasons"`
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

// Handle GET /api/v1/cancellation-reasons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reasons, err := h.service.GetCancellationReasons(r.Context())
	if err != nil {
		h.logger.Error("GET /cancellation-reasons - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := &ReasonsResponse{Reasons: make([]ReasonResponse, 0, len(reasons))}
	for _, reason := range reasons {
		response.Reasons = append(response.Reasons, ReasonResponse{
			ID:               reason.ID,
			Title:            reason.Title,
			VisibleToClient:  reason.VisibleToClient,
			VisibleToPartner: reason.VisibleToPartner,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
