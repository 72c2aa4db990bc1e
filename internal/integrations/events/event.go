package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// Event types
const (
	TypeCreated   = "booking.created"
	TypeUpdated   = "booking.updated"
	TypeApproved  = "booking.approved"
	TypeRejected  = "booking.rejected"
	TypeCancelled = "booking.cancelled"
	TypeCompleted = "booking.completed"
	TypeDeleted   = "booking.deleted"
)

// BookingEvent событие жизненного цикла бронирования
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"bookingId"`
	Venue      string    `json:"venue"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurredAt"`
}

// TypeForStatus тип события для перехода в статус
func TypeForStatus(status domain.BookingStatus) string {
	switch status {
	case domain.StatusApproved:
		return TypeApproved
	case domain.StatusRejected:
		return TypeRejected
	case domain.StatusCancelled:
		return TypeCancelled
	case domain.StatusCompleted:
		return TypeCompleted
	default:
		return TypeCreated
	}
}

// NewBookingEvent строит событие из бронирования
func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		Venue:      b.Venue.String(),
		Status:     b.Status.String(),
		Start:      b.Interval.Start,
		End:        b.Interval.End,
		OccurredAt: at,
	}
}
