package domain

// Default configuration values
const (
	DefaultPostCount           = 1
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours

	// NextAvailableSearchHorizonDays горизонт поиска ближайшего свободного
	// слота. Поиск дальше этой границы всегда возвращает "не найдено".
	NextAvailableSearchHorizonDays = 30

	// ClientCancellationLeadTimeMinutes минимальное время до начала записи,
	// за которое клиент ещё может отменить бронирование
	ClientCancellationLeadTimeMinutes = 120

	MaxCancellationCommentLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы бронирований, занимающих пост.
// Используется при подсчете занятости для расчета доступных слотов.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// ReleasedStatuses статусы, не занимающие пост (отмены и неявка)
var ReleasedStatuses = []BookingStatus{
	StatusCanceledByClient,
	StatusCanceledByPartner,
	StatusNoShow,
}

// Availability reason codes. Машиночитаемые коды причин недоступности слота,
// возвращаются в ответах API как есть.
const (
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonAllPostsOccupied    = "all_posts_occupied"
)
