package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUnknownVenue возвращается, когда площадка не входит в список известных
	ErrUnknownVenue = errors.New("create_booking: unknown venue")

	// ErrTooSoon возвращается, когда пользователь бронирует позже чем за minLeadDays дней
	ErrTooSoon = errors.New("create_booking: booking must be made further in advance")

	// ErrOrganizerRequired возвращается, когда администратор не указал организатора
	ErrOrganizerRequired = errors.New("create_booking: organizer is required for admin bookings")

	// ErrConflictDetected возвращается, когда политика запрещает создавать пересекающиеся бронирования
	ErrConflictDetected = errors.New("create_booking: booking conflicts with existing bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
