package servicepoint

import "errors"

var (
	// ErrPointNotFound возвращается, когда сервисная точка не найдена
	ErrPointNotFound = errors.New("servicepoint.repository: service point not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("servicepoint.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("servicepoint.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("servicepoint.repository: failed to scan row")
)
