package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-VenueBooking/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-VenueBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidData        = "некорректные данные бронирования"
	msgUnknownVenue       = "неизвестная площадка"
	msgTooSoon            = "бронирование нужно оформить заранее"
	msgOrganizerRequired  = "укажите организатора мероприятия"
	msgConflict           = "площадка уже занята в выбранное время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid data: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidData+": "+err.Error())

		case errors.Is(err, createBooking.ErrUnknownVenue):
			h.logger.Warn("POST /bookings - Unknown venue: user_id=%s, venue=%q", actor.ID, req.Venue)
			handlers.RespondBadRequest(w, msgUnknownVenue)

		case errors.Is(err, createBooking.ErrTooSoon):
			h.logger.Warn("POST /bookings - Too soon: user_id=%s, date=%s", actor.ID, req.Date)
			handlers.RespondUnprocessable(w, msgTooSoon)

		case errors.Is(err, createBooking.ErrOrganizerRequired):
			h.logger.Warn("POST /bookings - Organizer required: user_id=%s", actor.ID)
			handlers.RespondUnprocessable(w, msgOrganizerRequired)

		case errors.Is(err, createBooking.ErrConflictDetected):
			h.logger.Warn("POST /bookings - Conflict: user_id=%s, venue=%s, date=%s", actor.ID, req.Venue, req.Date)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, conflicts=%d",
		result.Booking.ID, actor.ID, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
