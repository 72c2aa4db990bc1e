package transition_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	transitionBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/transition_booking"
)

// TransitionBookingRequest HTTP request model
type TransitionBookingRequest struct {
	Status string `json:"status"` // "APPROVED", "REJECTED", "CANCELLED", "COMPLETED"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, actor domain.Actor) *transitionBooking.Request {
	return &transitionBooking.Request{
		BookingID: bookingID,
		Actor:     actor,
		Target:    r.Status,
	}
}
