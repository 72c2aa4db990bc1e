package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Actor  domain.Actor
	Status *string // фильтр по статусу (опционально)
	Venue  *string // фильтр по площадке (опционально)
	Query  string  // поиск по названию, площадке, статусу, организатору и имени владельца
}

// CalendarRequest запрос занятости площадок.
// Пользователь видит только одобренные бронирования, администратор может выбрать статус
type CalendarRequest struct {
	Actor  domain.Actor
	Venue  *string // фильтр по площадке (опционально)
	Status *string // по умолчанию APPROVED
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Organizer       *string   `json:"organizer,omitempty"`
	AdditionalNotes *string   `json:"additionalNotes,omitempty"`
	Venue           string    `json:"venue"`
	Date            string    `json:"date"`      // "2025-10-15"
	StartTime       string    `json:"startTime"` // "10:00"
	EndTime         string    `json:"endTime"`   // "14:00"
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	AdditionalHours int       `json:"additionalHours"`
	Status          string    `json:"status"`
	AllowedTargets  []string  `json:"allowedTransitions"`

	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BookingListItem элемент списка с пометкой о конфликте
type BookingListItem struct {
	BookingResponse
	OwnerName   string `json:"ownerName,omitempty"`
	HasConflict bool   `json:"hasConflict"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingListItem `json:"bookings"`
	// NamesUnavailable поиск выполнен без имен владельцев (AccountService недоступен)
	NamesUnavailable bool `json:"namesUnavailable,omitempty"`
}

// ConflictView сокращенное представление конфликтующего бронирования.
// Title и OwnerID заполняются только для тех, кому бронирование доступно целиком
type ConflictView struct {
	ID        uuid.UUID  `json:"id"`
	Venue     string     `json:"venue"`
	Date      string     `json:"date"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Status    string     `json:"status"`
	Title     string     `json:"title,omitempty"`
	OwnerID   *uuid.UUID `json:"ownerId,omitempty"`
}

// ConflictsResponse конфликты существующего бронирования
type ConflictsResponse struct {
	BookingID uuid.UUID      `json:"bookingId"`
	Conflicts []ConflictView `json:"conflicts"`
}

// CalendarResponse одобренные бронирования, занимающие площадки
type CalendarResponse struct {
	Entries []ConflictView `json:"entries"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO.
// allowed - допустимые целевые статусы (может быть nil)
func FromDomainBooking(b *domain.Booking, allowed []domain.BookingStatus) *BookingResponse {
	if b == nil {
		return nil
	}

	targets := make([]string, len(allowed))
	for i, s := range allowed {
		targets[i] = string(s)
	}

	return &BookingResponse{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Title:           b.Title,
		Description:     b.Description,
		Category:        b.Category,
		Organizer:       b.Organizer,
		AdditionalNotes: b.AdditionalNotes,
		Venue:           b.Venue.String(),
		Date:            b.Interval.Start.Format(domain.DateFormat),
		StartTime:       types.NewTimeString(b.Interval.Start).String(),
		EndTime:         types.NewTimeString(b.Interval.End).String(),
		Start:           b.Interval.Start,
		End:             b.Interval.End,
		AdditionalHours: b.AdditionalHours,
		Status:          string(b.Status),
		AllowedTargets:  targets,
		DeletedAt:       b.DeletedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список без допустимых переходов
func FromDomainBookings(bookings []*domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *FromDomainBooking(b, nil))
	}
	return out
}

// FromDomainConflict конвертирует бронирование в сокращенное представление без личных данных
func FromDomainConflict(b *domain.Booking) ConflictView {
	return ConflictView{
		ID:        b.ID,
		Venue:     b.Venue.String(),
		Date:      b.Interval.Start.Format(domain.DateFormat),
		StartTime: types.NewTimeString(b.Interval.Start).String(),
		EndTime:   types.NewTimeString(b.Interval.End).String(),
		Start:     b.Interval.Start,
		End:       b.Interval.End,
		Status:    string(b.Status),
	}
}

// FromDomainConflicts конвертирует список в сокращенные представления
func FromDomainConflicts(bookings []*domain.Booking) []ConflictView {
	out := make([]ConflictView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, FromDomainConflict(b))
	}
	return out
}

// FromDomainConflictsFor как FromDomainConflicts, но добавляет название и владельца
// для бронирований, которые actor может просматривать
func FromDomainConflictsFor(actor domain.Actor, bookings []*domain.Booking) []ConflictView {
	out := make([]ConflictView, 0, len(bookings))
	for _, b := range bookings {
		view := FromDomainConflict(b)
		if actor.CanView(b) {
			owner := b.OwnerID
			view.Title = b.Title
			view.OwnerID = &owner
		}
		out = append(out, view)
	}
	return out
}
