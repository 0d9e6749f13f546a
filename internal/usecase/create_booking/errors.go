package create_booking

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("create_booking: service point not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrTooLateToBook возвращается при попытке забронировать уже прошедшее время
	ErrTooLateToBook = errors.New("create_booking: requested time is in the past")

	// ErrOutsideWorkingHours возвращается, когда окно обслуживания
	// не помещается в рабочие часы точки
	ErrOutsideWorkingHours = errors.New("create_booking: outside working hours")

	// ErrNoCapacity возвращается, когда все подходящие посты заняты
	// пересекающимися бронированиями
	ErrNoCapacity = errors.New("create_booking: all posts are occupied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
