package check_availability

import (
	"github.com/google/uuid"

	checkAvailability "github.com/m04kA/SMC-VenueBooking/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	Venue           string     `json:"venue"`
	Date            string     `json:"date"`      // "2025-10-15"
	StartTime       string     `json:"startTime"` // "10:00"
	AdditionalHours int        `json:"additionalHours"`
	ExcludeID       *uuid.UUID `json:"excludeId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() *checkAvailability.Request {
	return &checkAvailability.Request{
		Venue:           r.Venue,
		Date:            r.Date,
		StartTime:       r.StartTime,
		AdditionalHours: r.AdditionalHours,
		ExcludeID:       r.ExcludeID,
	}
}
