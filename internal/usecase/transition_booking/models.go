package transition_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// Request модель запроса на смену статуса
type Request struct {
	BookingID uuid.UUID
	Actor     domain.Actor
	Target    string // "APPROVED", "REJECTED", "CANCELLED", "COMPLETED"
}

// Response бронирование после перехода и пересечения, не блокирующие переход
type Response struct {
	Booking  *models.BookingResponse  `json:"booking"`
	Warnings []models.BookingResponse `json:"warnings"`
}

// Policy настройки блокировки одобрения
type Policy struct {
	BlockApprovalOnConflict bool
}
