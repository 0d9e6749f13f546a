package availability

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("availability: service point not found")

	// ErrPointClosed возвращается, когда точка не работает в запрошенную дату
	ErrPointClosed = errors.New("availability: service point is closed on this date")

	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("availability: invalid input")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
