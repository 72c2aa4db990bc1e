package check_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/service/bookings/models"
)

// Request модель запроса на проверку доступности площадки
type Request struct {
	Venue           string     // площадка
	Date            string     // "2025-10-15"
	StartTime       string     // "10:00"
	AdditionalHours int        // дополнительные часы сверх базовой длительности
	ExcludeID       *uuid.UUID // ID редактируемого бронирования (не конфликтует само с собой)
}

// Response модель ответа с вычисленным интервалом и конфликтами
type Response struct {
	Venue     string                `json:"venue"`
	Date      string                `json:"date"`
	StartTime string                `json:"startTime"`
	EndTime   string                `json:"endTime"`
	Start     time.Time             `json:"start"`
	End       time.Time             `json:"end"`
	Available bool                  `json:"available"`
	Conflicts []models.ConflictView `json:"conflicts"`
}
