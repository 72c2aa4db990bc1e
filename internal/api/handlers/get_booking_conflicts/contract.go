package get_booking_conflicts

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetConflicts(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.ConflictsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
