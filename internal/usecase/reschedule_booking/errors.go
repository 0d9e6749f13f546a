package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrNotReschedulable возвращается для бронирования в статусе,
	// не допускающем перенос (in_progress и терминальные)
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrPermissionDenied возвращается при попытке перенести чужое бронирование
	ErrPermissionDenied = errors.New("reschedule_booking: permission denied")

	// ErrInvalidDate возвращается при некорректной новой дате
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrTooLateToBook возвращается при попытке переноса на прошедшее время
	ErrTooLateToBook = errors.New("reschedule_booking: requested time is in the past")

	// ErrOutsideWorkingHours возвращается, когда новое окно
	// не помещается в рабочие часы точки
	ErrOutsideWorkingHours = errors.New("reschedule_booking: outside working hours")

	// ErrNoCapacity возвращается, когда на новом слоте все посты заняты
	ErrNoCapacity = errors.New("reschedule_booking: all posts are occupied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
