package check_availability

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByVenue(ctx context.Context, venue domain.Venue, interval domain.Interval) ([]*domain.Booking, error)
}

// Metrics счетчики найденных конфликтов
type Metrics interface {
	RecordConflicts(venue, operation string, n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
