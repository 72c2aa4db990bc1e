package get_menu

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
)

type CateringService interface {
	ListMenu(ctx context.Context) (*models.MenuResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
