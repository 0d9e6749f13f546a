package get_availability

import "github.com/dmarkin/TirePoint-SchedulingService/internal/domain"

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available      bool   `json:"available"`
	Reason         string `json:"reason,omitempty"`
	TotalPosts     int    `json:"totalPosts"`
	OccupiedPosts  int    `json:"occupiedPosts"`
	AvailablePosts int    `json:"availablePosts"`
}

// FromSlotCheck конвертирует результат проверки в HTTP response
func FromSlotCheck(check domain.SlotCheck) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:      check.Available,
		Reason:         check.Reason,
		TotalPosts:     check.TotalPosts,
		OccupiedPosts:  check.OccupiedPosts,
		AvailablePosts: check.AvailablePosts,
	}
}
