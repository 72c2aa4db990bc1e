package catering

import "errors"

var (
	// ErrSelectionNotFound возвращается, когда у бронирования нет выбора кейтеринга
	ErrSelectionNotFound = errors.New("catering.repository: selection not found")

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("catering.repository: package not found")

	// ErrDishNotFound возвращается, когда блюдо не найдено
	ErrDishNotFound = errors.New("catering.repository: dish not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catering.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catering.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catering.repository: failed to scan row")
)
