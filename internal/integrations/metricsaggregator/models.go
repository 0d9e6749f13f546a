package metricsaggregator

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RecalculationRequest запрос на пересчет агрегатов сервисной точки.
// Отправляется при каждой смене статуса бронирования - агрегатор
// пересчитывает показатели завершаемости и отмен.
type RecalculationRequest struct {
	ServicePointID int64  `json:"servicePointId"`
	BookingID      int64  `json:"bookingId"`
	Status         string `json:"status"`
}
