package accountservice

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accountservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("accountservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что AccountService недоступен и поиск идет без имен владельцев
	ErrServiceDegraded = errors.New("accountservice unavailable: graceful degradation applied")
)
