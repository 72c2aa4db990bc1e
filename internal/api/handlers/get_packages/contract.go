package get_packages

import (
	"context"

	"github.com/m04kA/SMC-VenueBooking/internal/service/catering/models"
)

type CateringService interface {
	ListPackages(ctx context.Context) (*models.PackagesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
