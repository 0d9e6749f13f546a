package schedule

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("schedule: service point not found")

	// ErrInvalidHours возвращается при некорректных часах (закрытие не позже
	// открытия, рабочий день без часов). Ошибка конфигурации - отклоняется
	// на записи, а не молча нормализуется на чтении.
	ErrInvalidHours = errors.New("schedule: invalid working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
