package domain

import "github.com/dmarkin/TirePoint-SchedulingService/pkg/types"

// SlotCheck результат проверки доступности конкретного момента времени
type SlotCheck struct {
	Available      bool
	Reason         string // ReasonOutsideWorkingHours | ReasonAllPostsOccupied, пусто если доступен
	TotalPosts     int
	OccupiedPosts  int
	AvailablePosts int
}

// AvailableSlot represents a time slot on the enumeration grid
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	AvailablePosts  int
	TotalPosts      int
}

// IsFull returns true if the slot has no available posts
func (s *AvailableSlot) IsFull() bool {
	return s.AvailablePosts <= 0
}

// IsPartiallyAvailable returns true if the slot has some but not all posts available
func (s *AvailableSlot) IsPartiallyAvailable() bool {
	return s.AvailablePosts > 0 && s.AvailablePosts < s.TotalPosts
}

// IsFullyAvailable returns true if all posts are available
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.AvailablePosts == s.TotalPosts
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailableSlot) OccupancyRate() float64 {
	if s.TotalPosts == 0 {
		return 0
	}
	occupied := s.TotalPosts - s.AvailablePosts
	return float64(occupied) / float64(s.TotalPosts) * 100
}

// DayOccupancy сводка занятости точки на день для операционных дашбордов
type DayOccupancy struct {
	OpensAt       types.TimeString
	ClosesAt      types.TimeString
	TotalPosts    int
	Intervals     []AvailableSlot
	BusyIntervals int // интервалы без свободных постов
	FreeIntervals int // интервалы хотя бы с одним свободным постом
}
