package update_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUnknownVenue       = "неизвестная площадка"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgDeleted            = "бронирование удалено"
	msgNotEditable        = "бронирование больше нельзя изменить"
	msgTooSoon            = "бронировать нужно заранее"
	msgOrganizerRequired  = "укажите организатора"
	msgConflict           = "пересекается с существующими бронированиями"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, actor))
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrUnknownVenue):
			h.logger.Warn("PUT /bookings/{id} - Unknown venue: booking_id=%s, venue=%q", bookingID, req.Venue)
			handlers.RespondBadRequest(w, msgUnknownVenue)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrAlreadyDeleted):
			h.logger.Warn("PUT /bookings/{id} - Booking deleted: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgDeleted)

		case errors.Is(err, updateBooking.ErrNotEditable):
			h.logger.Warn("PUT /bookings/{id} - Not editable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateBooking.ErrTooSoon):
			h.logger.Warn("PUT /bookings/{id} - Too soon: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, updateBooking.ErrOrganizerRequired):
			h.logger.Warn("PUT /bookings/{id} - Organizer required: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgOrganizerRequired)

		case errors.Is(err, updateBooking.ErrConflictDetected):
			h.logger.Warn("PUT /bookings/{id} - Update blocked: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%s, user_id=%s, conflicts=%d",
		bookingID, actor.ID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
