package catering

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

// CateringRepository интерфейс репозитория кейтеринга
type CateringRepository interface {
	ListDishes(ctx context.Context, dishType string) ([]domain.Dish, error)
	GetDish(ctx context.Context, id string) (*domain.Dish, error)
	ListPackages(ctx context.Context) ([]domain.MainDishPackage, error)
	GetPackage(ctx context.Context, id string) (*domain.MainDishPackage, error)
	GetSelection(ctx context.Context, bookingID uuid.UUID) (*domain.CateringSelection, error)
	SaveSelection(ctx context.Context, sel *domain.CateringSelection) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики переключений блюд
type Metrics interface {
	RecordDishToggle(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
