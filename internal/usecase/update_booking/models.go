package update_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// Request модель запроса на изменение бронирования.
// Поля заменяются целиком, статус не меняется
type Request struct {
	BookingID       uuid.UUID    `validate:"-"`
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

// Response модель ответа с обновленным бронированием и предупреждениями о конфликтах
type Response struct {
	Booking   *models.BookingResponse `json:"booking"`
	Conflicts []models.ConflictView   `json:"conflicts"`
}

// Policy правила изменения бронирований
type Policy struct {
	MinLeadDays int // за сколько дней пользователь должен бронировать
	// BlockOnConflict запрещать любое пересечение с активными бронированиями
	BlockOnConflict bool
	// BlockApprovedOverlap запрещать одобренному бронированию пересекаться с другим одобренным
	BlockApprovedOverlap bool
}
