package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrUnknownVenue возвращается, когда площадка не входит в список известных
	ErrUnknownVenue = errors.New("update_booking: unknown venue")

	// ErrBookingNotFound возвращается, когда бронирование не найдено или скрыто от пользователя
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не может редактировать бронирование
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrAlreadyDeleted возвращается при попытке изменить удаленное бронирование
	ErrAlreadyDeleted = errors.New("update_booking: booking is deleted")

	// ErrNotEditable возвращается, когда статус бронирования не допускает изменений
	ErrNotEditable = errors.New("update_booking: booking can no longer be edited")

	// ErrTooSoon возвращается, когда новое начало нарушает срок бронирования для пользователя
	ErrTooSoon = errors.New("update_booking: booking must be made further in advance")

	// ErrOrganizerRequired возвращается, когда администратор не указал организатора
	ErrOrganizerRequired = errors.New("update_booking: organizer is required for admin bookings")

	// ErrConflictDetected возвращается, когда политика запрещает пересечение
	ErrConflictDetected = errors.New("update_booking: booking conflicts with existing bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
