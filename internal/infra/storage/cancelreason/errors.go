package cancelreason

import "errors"

var (
	// ErrReasonNotFound возвращается, когда причина отмены не найдена
	ErrReasonNotFound = errors.New("cancelreason.repository: cancellation reason not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cancelreason.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cancelreason.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("cancelreason.repository: failed to scan row")
)
