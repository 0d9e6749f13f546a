package availability

import (
	"time"

	"github.com/dmarkin/TirePoint-SchedulingService/pkg/types"
)

// CheckRequest параметры точечной проверки доступности.
// ExcludeBookingID исключает бронирование из подсчета занятости -
// используется при переносе, чтобы бронь не блокировала сама себя.
type CheckRequest struct {
	ServicePointID   int64
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	CategoryID       *int64
	ExcludeBookingID *int64
}

// NextSlot ближайший доступный слот, найденный в пределах горизонта поиска
type NextSlot struct {
	Date           time.Time
	StartTime      types.TimeString
	AvailablePosts int
	TotalPosts     int
}
