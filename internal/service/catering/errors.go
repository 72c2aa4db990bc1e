package catering

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrDishNotFound возвращается, когда блюдо не найдено в каталоге
	ErrDishNotFound = errors.New("dish not found")

	// ErrNotMainDish возвращается при попытке выбрать блюдо не из основного меню
	ErrNotMainDish = errors.New("dish is not a main dish")

	// ErrPackageNotFound возвращается, когда пакет не найден
	ErrPackageNotFound = errors.New("catering package not found")

	// ErrCateringLocked возвращается, когда кейтеринг уже нельзя менять (завершено или удалено)
	ErrCateringLocked = errors.New("catering can no longer be edited")

	// ErrCapacityExceeded возвращается, когда выбрано максимальное количество блюд
	ErrCapacityExceeded = errors.New("dish limit reached")

	// ErrPaxOutOfRange возвращается, когда количество гостей вне границ пакета
	ErrPaxOutOfRange = errors.New("expected pax out of package range")

	// ErrSelectionExceedsPackage возвращается, когда выбранных блюд больше, чем допускает новый пакет
	ErrSelectionExceedsPackage = errors.New("selected dishes exceed package limit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
