package toggle_dish

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
)

type CateringService interface {
	ToggleDish(ctx context.Context, bookingID uuid.UUID, dishID string, actor domain.Actor) (*models.SelectionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
