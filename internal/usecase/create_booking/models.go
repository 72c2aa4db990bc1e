package create_booking

import (
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor           domain.Actor `validate:"-"`
	Title           string       `validate:"required,max=50"`
	Description     string       `validate:"required,max=255"`
	Category        string       `validate:"required,max=50"`
	Organizer       *string      `validate:"omitempty,max=255"`
	AdditionalNotes *string      `validate:"omitempty,max=1000"`
	Venue           string       `validate:"required,venue"`
	Date            string       `validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime       string       `validate:"required,clock"`               // "10:00"
	AdditionalHours int          `validate:"gte=0"`
}

// Response модель ответа с созданным бронированием и предупреждениями о конфликтах
type Response struct {
	Booking   *models.BookingResponse `json:"booking"`
	Conflicts []models.ConflictView   `json:"conflicts"`
}

// Policy правила создания бронирований
type Policy struct {
	MinLeadDays     int  // за сколько дней пользователь должен бронировать
	BlockOnConflict bool // запрещать создание при пересечении с активными бронированиями
}
