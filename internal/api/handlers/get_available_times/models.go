package get_available_times

import (
	"github.com/dmarkin/TirePoint-SchedulingService/internal/domain"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailablePosts  int    `json:"availablePosts"`
	TotalPosts      int    `json:"totalPosts"`
}

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromSlots конвертирует слоты калькулятора в HTTP response
func FromSlots(date string, slots []domain.AvailableSlot) *AvailableTimesResponse {
	result := &AvailableTimesResponse{
		Date:  date,
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, slot := range slots {
		result.Slots = append(result.Slots, SlotResponse{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailablePosts:  slot.AvailablePosts,
			TotalPosts:      slot.TotalPosts,
		})
	}
	return result
}
