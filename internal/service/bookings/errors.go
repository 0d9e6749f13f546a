package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidTransition возвращается, когда переход статуса
	// не разрешен таблицей переходов для данного актора
	ErrInvalidTransition = errors.New("bookings: invalid status transition")

	// ErrCancellationTooLate возвращается, когда клиент отменяет бронирование
	// позже минимального срока до начала обслуживания. Переход при этом
	// разрешен таблицей - нарушена именно политика сроков.
	ErrCancellationTooLate = errors.New("bookings: cancellation window has passed")

	// ErrPermissionDenied возвращается при попытке управлять чужим бронированием
	ErrPermissionDenied = errors.New("bookings: permission denied")

	// ErrReasonNotFound возвращается для несуществующей причины отмены
	ErrReasonNotFound = errors.New("bookings: cancellation reason not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
