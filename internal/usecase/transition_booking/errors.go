package transition_booking

import "errors"

var (
	// ErrInvalidInput возвращается при неизвестном целевом статусе
	ErrInvalidInput = errors.New("transition_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено или удалено
	ErrBookingNotFound = errors.New("transition_booking: booking not found")

	// ErrAccessDenied возвращается, когда роль не позволяет запросить переход
	ErrAccessDenied = errors.New("transition_booking: access denied")

	// ErrIllegalTransition возвращается, когда переход не разрешен жизненным циклом
	ErrIllegalTransition = errors.New("transition_booking: illegal transition")

	// ErrAlreadyDeleted возвращается при попытке изменить статус удаленного бронирования
	ErrAlreadyDeleted = errors.New("transition_booking: booking is deleted")

	// ErrConflictDetected возвращается, когда одобрение блокируется пересечением с одобренным бронированием
	ErrConflictDetected = errors.New("transition_booking: conflicts with an approved booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_booking: internal error")
)
