package update_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	updateBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model; все поля заменяются целиком
type UpdateBookingRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Organizer       *string `json:"organizer,omitempty"`
	AdditionalNotes *string `json:"additionalNotes,omitempty"`
	Venue           string  `json:"venue"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	AdditionalHours int     `json:"additionalHours"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID uuid.UUID, actor domain.Actor) *updateBooking.Request {
	return &updateBooking.Request{
		BookingID:       bookingID,
		Actor:           actor,
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Organizer:       r.Organizer,
		AdditionalNotes: r.AdditionalNotes,
		Venue:           r.Venue,
		Date:            r.Date,
		StartTime:       r.StartTime,
		AdditionalHours: r.AdditionalHours,
	}
}
