package posts

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("posts: service point not found")

	// ErrPostNotFound возвращается, когда пост не найден
	ErrPostNotFound = errors.New("posts: service post not found")

	// ErrInvalidSchedule возвращается при некорректном кастомном расписании поста
	ErrInvalidSchedule = errors.New("posts: invalid custom schedule")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("posts: internal error")
)
