package create_booking

import (
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
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
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
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
