package metricsaggregator

import "errors"

var (
	// ErrInvalidResponse возвращается при неожиданном ответе агрегатора
	ErrInvalidResponse = errors.New("metricsaggregator: invalid response")

	// ErrServiceDegraded возвращается при недоступности агрегатора.
	// Пересчет метрик - побочный эффект, деградация не должна ломать переход статуса.
	ErrServiceDegraded = errors.New("metricsaggregator: service degraded")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("metricsaggregator: internal error")
)
